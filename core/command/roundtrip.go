// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package command

import (
	"context"
	"time"

	"github.com/ikmak/mongo-datamover/core/codec"
	"github.com/ikmak/mongo-datamover/core/connection"
	"github.com/ikmak/mongo-datamover/event"
)

// roundTrip marshals body, publishes monitoring events around the exchange
// and returns the raw reply. Every server round trip in this package funnels
// through here.
func roundTrip(ctx context.Context, conn connection.Connection, cdc codec.Codec, mon *event.CommandMonitor, db string, name string, body interface{}) (codec.Document, error) {
	cmd, err := cdc.Marshal(body)
	if err != nil {
		return nil, err
	}

	reqID := event.NextRequestID()
	start := time.Now()
	if mon != nil && mon.Started != nil {
		mon.Started(ctx, &event.CommandStartedEvent{
			Command:      cmd,
			DatabaseName: db,
			CommandName:  name,
			RequestID:    reqID,
		})
	}

	reply, err := conn.RunCommand(ctx, db, name, cmd)
	if err != nil {
		if mon != nil && mon.Failed != nil {
			mon.Failed(ctx, &event.CommandFailedEvent{
				CommandFinishedEvent: event.CommandFinishedEvent{
					DurationNanos: time.Since(start).Nanoseconds(),
					CommandName:   name,
					RequestID:     reqID,
				},
				Failure: err.Error(),
			})
		}
		return nil, err
	}

	if mon != nil && mon.Succeeded != nil {
		mon.Succeeded(ctx, &event.CommandSucceededEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{
				DurationNanos: time.Since(start).Nanoseconds(),
				CommandName:   name,
				RequestID:     reqID,
			},
			Reply: reply,
		})
	}
	return reply, nil
}
