// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package result contains the results from various operations.
package result

import (
	"github.com/ikmak/mongo-datamover/core/codec"
)

// WriteError is an error from the server for a particular document in a
// write command.
type WriteError struct {
	Index  int    `bson:"index"`
	Code   int32  `bson:"code"`
	ErrMsg string `bson:"errmsg"`
}

// WriteConcernError is an error representing a write which was not able to
// satisfy the requested write concern.
type WriteConcernError struct {
	Code   int32  `bson:"code"`
	ErrMsg string `bson:"errmsg"`
}

// Write is the result of a single write command, one per executed bulk.
type Write struct {
	OK                int32              `bson:"ok"`
	N                 int64              `bson:"n"`
	Code              int32              `bson:"code,omitempty"`
	ErrMsg            string             `bson:"errmsg,omitempty"`
	WriteErrors       []WriteError       `bson:"writeErrors,omitempty"`
	WriteConcernError *WriteConcernError `bson:"writeConcernError,omitempty"`
}

// IsOK reports whether the server accepted the command.
func (w Write) IsOK() bool {
	return w.OK == 1
}

// BulkWrite aggregates the per-bulk results of a many-document write, in
// bulk submission order.
type BulkWrite struct {
	N       int64
	Results []Write
}

// CursorBody is the server's cursor subdocument for an initial query or
// getMore reply.
type CursorBody struct {
	ID         int64            `bson:"id"`
	NS         string           `bson:"ns"`
	FirstBatch []codec.Document `bson:"firstBatch,omitempty"`
	NextBatch  []codec.Document `bson:"nextBatch,omitempty"`
}

// Cursor is the result of a command that returns a cursor.
type Cursor struct {
	OK     int32      `bson:"ok"`
	Code   int32      `bson:"code,omitempty"`
	ErrMsg string     `bson:"errmsg,omitempty"`
	Cursor CursorBody `bson:"cursor"`
}

// IsOK reports whether the server accepted the command.
func (c Cursor) IsOK() bool {
	return c.OK == 1
}

// Batch returns whichever batch the reply carried. An initial reply carries
// firstBatch, every getMore reply carries nextBatch.
func (c Cursor) Batch() []codec.Document {
	if c.Cursor.FirstBatch != nil {
		return c.Cursor.FirstBatch
	}
	return c.Cursor.NextBatch
}

// KillCursors is the result of a killCursors command.
type KillCursors struct {
	OK              int32   `bson:"ok"`
	CursorsKilled   []int64 `bson:"cursorsKilled"`
	CursorsNotFound []int64 `bson:"cursorsNotFound"`
	CursorsAlive    []int64 `bson:"cursorsAlive"`
}
