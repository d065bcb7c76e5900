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

// FindName is the wire name of the find command.
const FindName = "find"

// Find represents the find command.
//
// The find command starts a query and returns the first batch together with
// a server-issued cursor id. The filter is an opaque, already-serialized
// document; building filters is the query layer's concern. A negative Limit
// requests a single batch of at most |Limit| documents: the server closes
// the cursor after the first reply.
type Find struct {
	NS        Namespace
	Filter    codec.Document
	BatchSize int32
	Limit     int32
	Session   *session.Client
	Monitor   *event.CommandMonitor
}

type findBody struct {
	Find        string         `bson:"find"`
	Filter      codec.Document `bson:"filter"`
	BatchSize   int32          `bson:"batchSize,omitempty"`
	Limit       int32          `bson:"limit,omitempty"`
	SingleBatch bool           `bson:"singleBatch,omitempty"`
	LSID        *session.View  `bson:"lsid,omitempty"`
}

// RoundTrip handles the execution of this command using the provided
// connection. It returns the decoded result together with the raw reply.
func (f *Find) RoundTrip(ctx context.Context, conn connection.Connection, cdc codec.Codec) (result.Cursor, codec.Document, error) {
	filter := f.Filter
	if filter == nil {
		filter = cdc.NewEmptyDocument()
	}

	limit := f.Limit
	var singleBatch bool
	if limit < 0 {
		limit = -limit
		singleBatch = true
	}

	body := findBody{
		Find:        f.NS.Collection,
		Filter:      filter,
		BatchSize:   f.BatchSize,
		Limit:       limit,
		SingleBatch: singleBatch,
		LSID:        sessionView(f.Session),
	}

	if f.Session != nil {
		f.Session.ApplyCommand()
	}
	return roundTripCursor(ctx, conn, cdc, f.Monitor, f.NS.DB, FindName, body)
}
