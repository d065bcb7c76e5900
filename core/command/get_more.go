// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package command

import (
	"context"

	"github.com/ikmak/mongo-datamover/core/codec"
	"github.com/ikmak/mongo-datamover/core/connection"
	"github.com/ikmak/mongo-datamover/core/result"
	"github.com/ikmak/mongo-datamover/core/session"
	"github.com/ikmak/mongo-datamover/event"
)

// GetMoreName is the wire name of the getMore command.
const GetMoreName = "getMore"

// GetMore represents the getMore command.
//
// The getMore command retrieves the next batch of documents from a cursor.
// When BatchSize is zero the field is omitted and the server chooses the
// batch size itself.
type GetMore struct {
	ID        int64
	NS        Namespace
	BatchSize int32
	Session   *session.Client
	Monitor   *event.CommandMonitor
}

type getMoreBody struct {
	GetMore    int64         `bson:"getMore"`
	Collection string        `bson:"collection"`
	BatchSize  int32         `bson:"batchSize,omitempty"`
	LSID       *session.View `bson:"lsid,omitempty"`
}

// RoundTrip handles the execution of this command using the provided
// connection. It returns the decoded result together with the raw reply.
func (gm *GetMore) RoundTrip(ctx context.Context, conn connection.Connection, cdc codec.Codec) (result.Cursor, codec.Document, error) {
	body := getMoreBody{
		GetMore:    gm.ID,
		Collection: gm.NS.Collection,
		BatchSize:  gm.BatchSize,
		LSID:       sessionView(gm.Session),
	}

	if gm.Session != nil {
		gm.Session.ApplyCommand()
	}
	return roundTripCursor(ctx, conn, cdc, gm.Monitor, gm.NS.DB, GetMoreName, body)
}
