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
	"github.com/ikmak/mongo-datamover/event"
)

// KillCursorsName is the wire name of the killCursors command.
const KillCursorsName = "killCursors"

// KillCursors represents the killCursors command.
//
// The killCursors command releases server-side cursor resources before
// natural exhaustion. Callers treat it as best-effort.
type KillCursors struct {
	NS      Namespace
	IDs     []int64
	Monitor *event.CommandMonitor
}

type killCursorsBody struct {
	KillCursors string  `bson:"killCursors"`
	Cursors     []int64 `bson:"cursors"`
}

// RoundTrip handles the execution of this command using the provided
// connection.
func (kc *KillCursors) RoundTrip(ctx context.Context, conn connection.Connection, cdc codec.Codec) (result.KillCursors, error) {
	body := killCursorsBody{KillCursors: kc.NS.Collection, Cursors: kc.IDs}

	reply, err := roundTrip(ctx, conn, cdc, kc.Monitor, kc.NS.DB, KillCursorsName, body)
	if err != nil {
		return result.KillCursors{}, err
	}

	var res result.KillCursors
	if err := cdc.Unmarshal(reply, &res); err != nil {
		return result.KillCursors{}, NewCommandResponseError("unable to decode killCursors result", err)
	}
	return res, nil
}
