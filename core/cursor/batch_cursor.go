// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package cursor

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"

	"github.com/ikmak/mongo-datamover/core/codec"
	"github.com/ikmak/mongo-datamover/core/command"
	"github.com/ikmak/mongo-datamover/core/connection"
	"github.com/ikmak/mongo-datamover/core/result"
	"github.com/ikmak/mongo-datamover/core/session"
	"github.com/ikmak/mongo-datamover/event"
)

// ErrCursorInUse occurs when a getMore is attempted while another one is
// still in flight for the same cursor. A server-side cursor is exclusive
// state; concurrent fetches against it have undefined behavior.
var ErrCursorInUse = errors.New("cursor is already in use")

// Ref identifies a server-side result-set position. A zero ID means the
// cursor is exhausted: no further fetch is possible or needed.
type Ref struct {
	NS command.Namespace
	ID int64
}

// Response is the decoded reply of one batch round trip, kept alongside the
// raw document for response-granular traversal.
type Response struct {
	Raw            codec.Document
	ID             int64
	Documents      []codec.Document
	NumberReturned int
}

// BatchCursor is a batch-granular stream over one logical query. The
// external query layer supplies the first batch and cursor reference; the
// cursor lazily issues getMore fetches for the rest and releases the
// server-side cursor on Close.
type BatchCursor struct {
	conn connection.Connection
	cdc  codec.Codec
	sess *session.Client
	mon  *event.CommandMonitor

	ref       Ref
	batchSize int32
	batch     []codec.Document
	resp      Response
	first     bool
	err       error
	closed    bool

	// Guards against two concurrent getMore fetches for one cursor.
	inflight *semaphore.Weighted
}

// NewBatchCursor wraps the reply of an initial query. batchSize carries the
// caller's explicit batch size; zero lets the server choose on every fetch.
func NewBatchCursor(
	conn connection.Connection,
	cdc codec.Codec,
	res result.Cursor,
	raw codec.Document,
	batchSize int32,
	sess *session.Client,
	mon *event.CommandMonitor,
) (*BatchCursor, error) {
	ns, err := command.ParseNamespace(res.Cursor.NS)
	if err != nil {
		return nil, err
	}

	docs := res.Batch()
	return &BatchCursor{
		conn:      conn,
		cdc:       cdc,
		sess:      sess,
		mon:       mon,
		ref:       Ref{NS: ns, ID: res.Cursor.ID},
		batchSize: batchSize,
		batch:     docs,
		resp: Response{
			Raw:            raw,
			ID:             res.Cursor.ID,
			Documents:      docs,
			NumberReturned: len(docs),
		},
		first:    true,
		inflight: semaphore.NewWeighted(1),
	}, nil
}

// ID returns the cursor id. Zero means the server has exhausted the cursor.
func (bc *BatchCursor) ID() int64 {
	return bc.ref.ID
}

// Ref returns the cursor reference after the most recent batch.
func (bc *BatchCursor) Ref() Ref {
	return bc.ref
}

// Next advances to the next batch. The first call yields the initial batch
// without a round trip; subsequent calls fetch via getMore. It returns false
// once the cursor is exhausted, closed, or in an error state.
func (bc *BatchCursor) Next(ctx context.Context) bool {
	if bc.err != nil || bc.closed {
		return false
	}

	if bc.first {
		bc.first = false
		return true
	}

	if bc.ref.ID == 0 {
		return false
	}

	bc.getMore(ctx)
	return bc.err == nil
}

// Batch returns the current batch of documents. The returned slice is only
// valid until the next call to Next.
func (bc *BatchCursor) Batch() []codec.Document {
	return bc.batch
}

// Response returns the full server response for the current batch.
func (bc *BatchCursor) Response() Response {
	return bc.resp
}

// Err returns the last error encountered.
func (bc *BatchCursor) Err() error {
	return bc.err
}

// Close releases the server-side cursor if it is still live. The kill is
// best-effort: a failure is recorded only when no earlier error exists, and
// the cursor is unusable either way.
func (bc *BatchCursor) Close(ctx context.Context) error {
	if bc.closed {
		return bc.err
	}
	bc.closed = true
	bc.batch = nil

	if bc.ref.ID == 0 {
		return bc.err
	}

	kc := command.KillCursors{NS: bc.ref.NS, IDs: []int64{bc.ref.ID}, Monitor: bc.mon}
	if _, err := kc.RoundTrip(ctx, bc.conn, bc.cdc); err == nil {
		bc.ref.ID = 0
	} else if bc.err == nil {
		bc.err = err
	}

	return bc.err
}

func (bc *BatchCursor) getMore(ctx context.Context) {
	bc.batch = nil

	if !bc.inflight.TryAcquire(1) {
		bc.err = ErrCursorInUse
		return
	}
	defer bc.inflight.Release(1)

	gm := command.GetMore{
		ID:        bc.ref.ID,
		NS:        bc.ref.NS,
		BatchSize: bc.batchSize,
		Session:   bc.sess,
		Monitor:   bc.mon,
	}

	res, raw, err := gm.RoundTrip(ctx, bc.conn, bc.cdc)
	if err != nil {
		bc.err = err
		return
	}

	docs := res.Batch()
	bc.ref.ID = res.Cursor.ID
	bc.batch = docs
	bc.resp = Response{
		Raw:            raw,
		ID:             res.Cursor.ID,
		Documents:      docs,
		NumberReturned: len(docs),
	}
}
