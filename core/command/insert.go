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
)

// InsertName is the wire name of the insert command.
const InsertName = "insert"

// Insert represents the insert command.
//
// The insert command writes a batch of already-serialized documents into a
// collection.
type Insert struct {
	Write
	Docs []codec.Document
}

type insertBody struct {
	Insert                   string             `bson:"insert"`
	Documents                []codec.Document   `bson:"documents"`
	Ordered                  bool               `bson:"ordered"`
	BypassDocumentValidation bool               `bson:"bypassDocumentValidation,omitempty"`
	WriteConcern             *writeconcern.View `bson:"writeConcern,omitempty"`
	LSID                     *session.View      `bson:"lsid,omitempty"`
	TxnNumber                int64              `bson:"txnNumber,omitempty"`
}

// Body builds the marshalable command body for the given batch of documents.
func (i *Insert) Body(docs []codec.Document) (interface{}, error) {
	wc, lsid, txn, err := i.envelope()
	if err != nil {
		return nil, err
	}

	return insertBody{
		Insert:                   i.NS.Collection,
		Documents:                docs,
		Ordered:                  i.Ordered,
		BypassDocumentValidation: i.BypassDocumentValidation,
		WriteConcern:             wc,
		LSID:                     lsid,
		TxnNumber:                txn,
	}, nil
}

// EnvelopeSize returns the serialized size of the command with no documents.
// The caller reserves this overhead before packing documents, so the final
// command stays within the server's document size limit.
func (i *Insert) EnvelopeSize(cdc codec.Codec) (int, error) {
	body, err := i.Body(nil)
	if err != nil {
		return 0, err
	}

	doc, err := cdc.Marshal(body)
	if err != nil {
		return 0, err
	}
	return doc.Size(), nil
}

// RoundTrip handles the execution of this command for a single batch using
// the provided connection.
func (i *Insert) RoundTrip(ctx context.Context, conn connection.Connection, cdc codec.Codec) (result.Write, error) {
	body, err := i.Body(i.Docs)
	if err != nil {
		return result.Write{}, err
	}

	if i.Session != nil {
		i.Session.ApplyCommand()
	}
	return roundTripWrite(ctx, conn, cdc, i.Monitor, i.NS.DB, InsertName, body)
}
