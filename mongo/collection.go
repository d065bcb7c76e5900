// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"

	"github.com/ikmak/mongo-datamover/core/codec"
	"github.com/ikmak/mongo-datamover/core/command"
	"github.com/ikmak/mongo-datamover/core/connection"
	"github.com/ikmak/mongo-datamover/core/cursor"
	"github.com/ikmak/mongo-datamover/core/dispatch"
	"github.com/ikmak/mongo-datamover/core/result"
	"github.com/ikmak/mongo-datamover/core/session"
	"github.com/ikmak/mongo-datamover/core/writeconcern"
	"github.com/ikmak/mongo-datamover/event"
)

// Collection performs writes and queries against a collection over an
// established connection. All state is per call or per cursor; a Collection
// itself is immutable and safe for concurrent use.
type Collection struct {
	ns   command.Namespace
	conn connection.Connection
	cdc  codec.Codec
	wc   *writeconcern.WriteConcern
	sess *session.Client
	mon  *event.CommandMonitor
}

// Option configures a Collection.
type Option func(*Collection)

// WithWriteConcern sets the default write concern for the collection.
func WithWriteConcern(wc *writeconcern.WriteConcern) Option {
	return func(c *Collection) { c.wc = wc }
}

// WithSession attaches a client session to every command the collection
// issues.
func WithSession(sess *session.Client) Option {
	return func(c *Collection) { c.sess = sess }
}

// WithMonitor sets the command monitor notified around every round trip.
func WithMonitor(mon *event.CommandMonitor) Option {
	return func(c *Collection) { c.mon = mon }
}

// NewCollection creates a Collection for db.name using the provided
// connection and codec.
func NewCollection(db, name string, conn connection.Connection, cdc codec.Codec, opts ...Option) (*Collection, error) {
	ns, err := command.NewNamespace(db, name)
	if err != nil {
		return nil, err
	}

	coll := &Collection{ns: ns, conn: conn, cdc: cdc}
	for _, opt := range opts {
		opt(coll)
	}
	return coll, nil
}

// Namespace returns the namespace of the collection.
func (coll *Collection) Namespace() command.Namespace {
	return coll.ns
}

// InsertOne inserts a single document into the collection.
func (coll *Collection) InsertOne(ctx context.Context, document interface{}) (result.Write, error) {
	doc, err := coll.cdc.Marshal(document)
	if err != nil {
		return result.Write{}, codec.MarshalError{Value: document, Err: err}
	}

	cmd := command.Insert{
		Write: command.Write{
			NS:           coll.ns,
			Ordered:      true,
			WriteConcern: coll.wc,
			Session:      coll.sess,
			Monitor:      coll.mon,
		},
		Docs: []codec.Document{doc},
	}
	return dispatch.Insert(ctx, cmd, coll.conn, coll.cdc)
}

// InsertMany inserts the documents as a sequence of size- and count-bounded
// bulks. Under ordered mode the first failing bulk aborts the call; under
// unordered mode failures are recorded per bulk and execution continues. A
// nil wc falls back to the collection's write concern.
func (coll *Collection) InsertMany(
	ctx context.Context,
	documents []interface{},
	ordered bool,
	wc *writeconcern.WriteConcern,
	bypassValidation bool,
) (result.BulkWrite, error) {
	if wc == nil {
		wc = coll.wc
	}

	cmd := command.Insert{
		Write: command.Write{
			NS:                       coll.ns,
			Ordered:                  ordered,
			BypassDocumentValidation: bypassValidation,
			WriteConcern:             wc,
			Session:                  coll.sess,
			Monitor:                  coll.mon,
		},
	}
	return dispatch.InsertMany(ctx, cmd, documents, coll.conn, coll.cdc)
}

// FindOptions configures a Find.
type FindOptions struct {
	// BatchSize is sent on the initial query and every getMore. Zero lets
	// the server choose each batch's size.
	BatchSize int32
	// Limit bounds the total number of documents the server returns. A
	// negative limit requests a single batch of at most |Limit| documents.
	Limit int32
}

// Find starts a query and returns a document-granular cursor over the
// results. A nil filter matches everything.
func (coll *Collection) Find(ctx context.Context, filter interface{}, opts FindOptions) (*cursor.Cursor, error) {
	var filterDoc codec.Document
	if filter != nil {
		var err error
		filterDoc, err = coll.cdc.Marshal(filter)
		if err != nil {
			return nil, codec.MarshalError{Value: filter, Err: err}
		}
	}

	cmd := command.Find{
		NS:        coll.ns,
		Filter:    filterDoc,
		BatchSize: opts.BatchSize,
		Limit:     opts.Limit,
		Session:   coll.sess,
		Monitor:   coll.mon,
	}

	res, raw, err := cmd.RoundTrip(ctx, coll.conn, coll.cdc)
	if err != nil {
		return nil, err
	}

	bc, err := cursor.NewBatchCursor(coll.conn, coll.cdc, res, raw, opts.BatchSize, coll.sess, coll.mon)
	if err != nil {
		return nil, err
	}
	return cursor.NewCursor(bc)
}
