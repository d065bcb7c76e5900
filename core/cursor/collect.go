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

// ErrNoDocuments occurs when Head or RequireOne is called on a stream that
// yields no documents.
var ErrNoDocuments = errors.New("no documents in result")

// ErrorPolicy selects how Collect behaves when the stream fails mid-way.
type ErrorPolicy uint8

const (
	// FailOnError fails the whole call on a mid-stream error. The default.
	FailOnError ErrorPolicy = iota
	// StopOnError truncates the result at the error: whatever was collected
	// before the failure is returned as a best-effort result.
	StopOnError
)

// Container receives collected documents. The core logic is
// container-agnostic: callers pick the target sequence type at the call
// site.
type Container[E any] interface {
	Add(E)
	Len() int
}

// SliceContainer is a Container backed by a slice.
type SliceContainer[E any] struct {
	Elems []E
}

// Add appends e to the container.
func (s *SliceContainer[E]) Add(e E) { s.Elems = append(s.Elems, e) }

// Len returns the number of collected elements.
func (s *SliceContainer[E]) Len() int { return len(s.Elems) }

// CollectInto materializes up to max documents into dst, driving the cursor
// across batches as needed. Zero or negative max means unbounded.
func CollectInto(ctx context.Context, c *Cursor, max int, policy ErrorPolicy, dst Container[codec.Document]) error {
	_, err := Fold(ctx, c, dst, max, func(dst Container[codec.Document], doc codec.Document) Container[codec.Document] {
		dst.Add(doc)
		return dst
	})
	if err != nil && policy == StopOnError {
		return nil
	}
	return err
}

// Collect is CollectInto with a slice target.
func Collect(ctx context.Context, c *Cursor, max int, policy ErrorPolicy) ([]codec.Document, error) {
	var dst SliceContainer[codec.Document]
	if err := CollectInto(ctx, c, max, policy, &dst); err != nil {
		return nil, err
	}
	return dst.Elems, nil
}

// HeadOption returns the first document of the stream, or false when the
// stream is empty.
func HeadOption(ctx context.Context, c *Cursor) (codec.Document, bool, error) {
	docs, err := Collect(ctx, c, 1, FailOnError)
	if err != nil {
		return nil, false, err
	}
	if len(docs) == 0 {
		return nil, false, nil
	}
	return docs[0], true, nil
}

// Head returns the first document of the stream, failing with
// ErrNoDocuments when the stream is empty.
func Head(ctx context.Context, c *Cursor) (codec.Document, error) {
	doc, ok, err := HeadOption(ctx, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoDocuments
	}
	return doc, nil
}

// One is an alias for HeadOption matching the single-result naming of the
// public API.
func One(ctx context.Context, c *Cursor) (codec.Document, bool, error) {
	return HeadOption(ctx, c)
}

// RequireOne is an alias for Head.
func RequireOne(ctx context.Context, c *Cursor) (codec.Document, error) {
	return Head(ctx, c)
}

// PeekInto materializes up to max documents from the current batch only
// into dst; it never triggers a getMore. It returns the current cursor
// reference so the caller can resume pagination explicitly. Peek is the
// manual-pagination mode: the caller drives advancement, not the engine.
func PeekInto(bc *BatchCursor, max int, dst Container[codec.Document]) Ref {
	docs := bc.Batch()
	if max > 0 && len(docs) > max {
		docs = docs[:max]
	}
	for _, doc := range docs {
		dst.Add(doc)
	}
	return bc.Ref()
}

// Peek is PeekInto with a slice target.
func Peek(bc *BatchCursor, max int) ([]codec.Document, Ref) {
	var dst SliceContainer[codec.Document]
	ref := PeekInto(bc, max, &dst)
	return dst.Elems, ref
}
