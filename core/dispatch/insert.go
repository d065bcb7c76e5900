// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package dispatch

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ikmak/mongo-datamover/core/batch"
	"github.com/ikmak/mongo-datamover/core/codec"
	"github.com/ikmak/mongo-datamover/core/command"
	"github.com/ikmak/mongo-datamover/core/connection"
	"github.com/ikmak/mongo-datamover/core/description"
	"github.com/ikmak/mongo-datamover/core/result"
	"github.com/ikmak/mongo-datamover/core/writeconcern"
)

// unknownErrCode tags write results synthesized for bulks whose execution
// failed under unordered mode, where no server code is available.
const unknownErrCode = 8

// Insert handles the execution of a single budgeted bulk as one insert
// command. An empty bulk succeeds trivially without a round trip.
func Insert(
	ctx context.Context,
	cmd command.Insert,
	conn connection.Connection,
	cdc codec.Codec,
) (result.Write, error) {
	if !description.BatchWriteSupported(conn.Description()) {
		return result.Write{}, command.ErrBatchWriteUnsupported
	}

	if len(cmd.Docs) == 0 {
		return result.Write{OK: 1}, nil
	}

	res, err := cmd.RoundTrip(ctx, conn, cdc)
	if err != nil {
		return res, err
	}

	if !writeconcern.AckWrite(cmd.WriteConcern) {
		return res, command.ErrUnacknowledgedWrite
	}
	return res, nil
}

// InsertMany executes a many-document insert as a sequence of budgeted
// bulks, strictly in submission order.
//
// Every value is serialized up front; a single serialization failure fails
// the whole call before any network activity. The per-call budget is derived
// from the connection's server description with the envelope overhead of
// this call's command reserved first. Under ordered mode the first failing
// bulk aborts the call. Under unordered mode an execution failure is
// captured as a failed write result in that bulk's slot and execution
// continues, so the caller can inspect per-bulk outcomes.
func InsertMany(
	ctx context.Context,
	cmd command.Insert,
	values []interface{},
	conn connection.Connection,
	cdc codec.Codec,
) (result.BulkWrite, error) {
	desc := conn.Description()
	if !description.BatchWriteSupported(desc) {
		return result.BulkWrite{}, command.ErrBatchWriteUnsupported
	}

	if len(values) == 0 {
		return result.BulkWrite{}, nil
	}

	docs := make([]codec.Document, 0, len(values))
	for _, val := range values {
		doc, err := cdc.Marshal(val)
		if err != nil {
			return result.BulkWrite{}, codec.MarshalError{Value: val, Err: err}
		}
		docs = append(docs, doc)
	}

	budget, err := writeBudget(&cmd, cdc, desc)
	if err != nil {
		return result.BulkWrite{}, err
	}

	var res result.BulkWrite
	batches := batch.NewBatches(docs, budget)
	for b := batches.Next(); b != nil; b = batches.Next() {
		bulkCmd := cmd
		bulkCmd.Docs = b

		wres, err := Insert(ctx, bulkCmd, conn, cdc)
		if err == command.ErrUnacknowledgedWrite {
			err = nil
		}
		if err != nil {
			if cmd.Ordered {
				return result.BulkWrite{}, err
			}
			wres = result.Write{Code: unknownErrCode, ErrMsg: err.Error()}
		}

		res.Results = append(res.Results, wres)
		res.N += wres.N
	}

	return res, nil
}

// writeBudget computes the per-call chunking budget: the server's document
// size limit minus the serialized size of this command's empty envelope, and
// the server's batch count limit. Server metadata can change between calls,
// so the budget is never cached.
func writeBudget(cmd *command.Insert, cdc codec.Codec, desc description.Server) (batch.Budget, error) {
	envelope, err := cmd.EnvelopeSize(cdc)
	if err != nil {
		return batch.Budget{}, errors.Wrap(err, "unable to size command envelope")
	}

	byteBudget := int(desc.MaxDocumentSize) - envelope
	if byteBudget < 1 {
		// A degenerate budget still must make progress; one document per
		// bulk lets the server reject each with its own diagnostic.
		byteBudget = 1
	}

	return batch.Budget{
		MaxDocumentBytes: byteBudget,
		MaxBatchCount:    int(desc.MaxBatchCount),
	}, nil
}
