// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package cursor

import (
	"context"
	"errors"

	"github.com/ikmak/mongo-datamover/core/codec"
)

// Cursor is a document-granular stream built on a BatchCursor.
//
// A typical usage:
//
//	defer cur.Close(ctx)
//	for cur.Next(ctx) {
//		var elem myDoc
//		if err := cur.Decode(&elem); err != nil {
//			return err
//		}
//		// do something with elem....
//	}
//	if err := cur.Err(); err != nil {
//		return err
//	}
type Cursor struct {
	bc      *BatchCursor
	batch   []codec.Document
	pos     int
	current codec.Document
	err     error
}

// NewCursor creates a document-granular cursor over bc.
func NewCursor(bc *BatchCursor) (*Cursor, error) {
	if bc == nil {
		return nil, errors.New("batch cursor must not be nil")
	}
	return &Cursor{bc: bc}, nil
}

// ID returns the ID of this cursor.
func (c *Cursor) ID() int64 { return c.bc.ID() }

// Batches returns the underlying batch-granular cursor.
func (c *Cursor) Batches() *BatchCursor { return c.bc }

// Next gets the next document from this cursor, fetching another batch when
// the current one is consumed. Returns true if there were no errors and a
// document is available via Current.
func (c *Cursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}

	if c.pos < len(c.batch) {
		c.current = c.batch[c.pos]
		c.pos++
		return true
	}

	// Advance batches until one carries a document. A live cursor may return
	// an empty batch, so keep going until exhaustion or an error.
	for {
		if !c.bc.Next(ctx) {
			c.err = c.bc.Err()
			return false
		}
		if len(c.bc.Batch()) > 0 {
			break
		}
	}

	c.batch = c.bc.Batch()
	c.current = c.batch[0]
	c.pos = 1
	return true
}

// Current returns the document Next advanced to. It is only valid until the
// next call to Next.
func (c *Cursor) Current() codec.Document {
	return c.current
}

// Decode decodes the current document into val.
func (c *Cursor) Decode(val interface{}) error {
	return c.bc.cdc.Unmarshal(c.current, val)
}

// Err returns the current error.
func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.bc.Err()
}

// Close closes this cursor, releasing the server-side cursor if needed.
func (c *Cursor) Close(ctx context.Context) error {
	return c.bc.Close(ctx)
}
