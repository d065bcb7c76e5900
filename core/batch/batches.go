// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package batch

import (
	"github.com/ikmak/mongo-datamover/core/codec"
)

// Budget bounds a single batch of a write operation. MaxDocumentBytes is the
// byte budget left for documents once the command envelope has been
// accounted for; MaxBatchCount is the server's limit on documents per write
// command. A zero field means unbounded.
type Budget struct {
	MaxDocumentBytes int
	MaxBatchCount    int
}

// Batches splits a sequence of documents into budgeted batches. This is only
// used for write operations. Batches are produced forward-only; re-splitting
// requires constructing a new Batches.
type Batches struct {
	Documents []codec.Document
	Budget    Budget

	offset int
}

// NewBatches constructs a Batches over documents with the given budget.
func NewBatches(documents []codec.Document, budget Budget) *Batches {
	return &Batches{Documents: documents, Budget: budget}
}

// Next returns the next batch, or nil when all documents have been handed
// out. Documents are accumulated while both budget fields are respected. A
// single document exceeding the byte budget becomes a batch of its own: it
// is never dropped or split, so the operation always makes progress, and the
// server is left to reject it with its own diagnostic.
func (b *Batches) Next() []codec.Document {
	if b.offset >= len(b.Documents) {
		return nil
	}

	start := b.offset
	var size int
	i := start
	for ; i < len(b.Documents); i++ {
		n := i - start
		if b.Budget.MaxBatchCount > 0 && n == b.Budget.MaxBatchCount {
			break
		}
		ds := b.Documents[i].Size()
		if b.Budget.MaxDocumentBytes > 0 && size+ds > b.Budget.MaxDocumentBytes && n > 0 {
			break
		}
		size += ds
	}

	batch := b.Documents[start:i]
	b.offset = i
	return batch
}

// Size returns the number of documents not yet handed out.
func (b *Batches) Size() int {
	if b.offset > len(b.Documents) {
		return 0
	}
	return len(b.Documents) - b.offset
}

// Split is a convenience that consumes a Batches in one call.
func Split(documents []codec.Document, budget Budget) [][]codec.Document {
	batches := NewBatches(documents, budget)
	var out [][]codec.Document
	for batch := batches.Next(); batch != nil; batch = batches.Next() {
		out = append(out, batch)
	}
	return out
}
