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
	"github.com/ikmak/mongo-datamover/core/writeconcern"
	"github.com/ikmak/mongo-datamover/event"
)

// Write holds the envelope fields shared by all write commands: ordering,
// validation bypass, write concern and session metadata. Concrete commands
// such as Insert embed it and add their command name and payload.
type Write struct {
	NS                       Namespace
	Ordered                  bool
	BypassDocumentValidation bool
	WriteConcern             *writeconcern.WriteConcern
	Session                  *session.Client
	Monitor                  *event.CommandMonitor
}

// envelope resolves the envelope fields into their marshalable forms,
// applying the in-transaction write concern suppression rule.
func (w *Write) envelope() (*writeconcern.View, *session.View, int64, error) {
	wc, err := concernView(w.WriteConcern, w.Session)
	if err != nil {
		return nil, nil, 0, err
	}
	return wc, sessionView(w.Session), txnNumber(w.Session), nil
}

// roundTripWrite runs body and decodes the reply into a write result. A
// not-ok reply is returned as a command Error carrying the server's
// diagnostic.
func roundTripWrite(ctx context.Context, conn connection.Connection, cdc codec.Codec, mon *event.CommandMonitor, db string, name string, body interface{}) (result.Write, error) {
	reply, err := roundTrip(ctx, conn, cdc, mon, db, name, body)
	if err != nil {
		return result.Write{}, err
	}
	if len(reply) == 0 {
		return result.Write{}, ErrNoCommandResponse
	}

	var res result.Write
	if err := cdc.Unmarshal(reply, &res); err != nil {
		return result.Write{}, NewCommandResponseError("unable to decode write result", err)
	}

	return res, writeCommandError(res)
}

// roundTripCursor runs body and decodes the reply into a cursor result,
// keeping the raw reply alongside for response-granular traversal.
func roundTripCursor(ctx context.Context, conn connection.Connection, cdc codec.Codec, mon *event.CommandMonitor, db string, name string, body interface{}) (result.Cursor, codec.Document, error) {
	reply, err := roundTrip(ctx, conn, cdc, mon, db, name, body)
	if err != nil {
		return result.Cursor{}, nil, err
	}
	if len(reply) == 0 {
		return result.Cursor{}, nil, ErrNoCommandResponse
	}

	var res result.Cursor
	if err := cdc.Unmarshal(reply, &res); err != nil {
		return result.Cursor{}, nil, NewCommandResponseError("unable to decode cursor result", err)
	}

	return res, reply, cursorCommandError(res)
}
