// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package cursor

import (
	"context"

	"github.com/ikmak/mongo-datamover/core/codec"
)

// Signal is the traversal control value returned by a step function. It
// tells the driving loop to proceed with the next unit, stop successfully,
// or abort the whole traversal.
type Signal[S any] struct {
	state S
	done  bool
	err   error
}

// Continue proceeds to the next document, batch or response with the given
// accumulator state.
func Continue[S any](state S) Signal[S] {
	return Signal[S]{state: state}
}

// Done stops the traversal successfully with the given accumulator state.
// No further units are consumed and no further batches are fetched.
func Done[S any](state S) Signal[S] {
	return Signal[S]{state: state, done: true}
}

// Fail aborts the traversal, surfacing err as the call's failure.
func Fail[S any](err error) Signal[S] {
	return Signal[S]{err: err}
}

// Step functions for the fold variants. The ...M forms receive the
// traversal's context and may block on their own I/O; the plain forms are
// pure. maxDocs bounds the total documents consumed across all batches in
// every variant; zero or negative means unbounded.
type (
	StepFunc[S any]           func(S, codec.Document) S
	StepFuncM[S any]          func(context.Context, S, codec.Document) (S, error)
	WhileStepFunc[S any]      func(S, codec.Document) Signal[S]
	WhileStepFuncM[S any]     func(context.Context, S, codec.Document) Signal[S]
	BatchStepFunc[S any]      func(S, []codec.Document) Signal[S]
	BatchStepFuncM[S any]     func(context.Context, S, []codec.Document) Signal[S]
	ResponseStepFunc[S any]   func(S, Response) Signal[S]
	ResponseStepFuncM[S any]  func(context.Context, S, Response) Signal[S]
)

// Fold applies step to every document, threading the accumulator through.
func Fold[S any](ctx context.Context, c *Cursor, initial S, maxDocs int, step StepFunc[S]) (S, error) {
	return FoldWhileM(ctx, c, initial, maxDocs, func(_ context.Context, state S, doc codec.Document) Signal[S] {
		return Continue(step(state, doc))
	})
}

// FoldM is Fold with a context-aware step that may fail.
func FoldM[S any](ctx context.Context, c *Cursor, initial S, maxDocs int, step StepFuncM[S]) (S, error) {
	return FoldWhileM(ctx, c, initial, maxDocs, func(ctx context.Context, state S, doc codec.Document) Signal[S] {
		next, err := step(ctx, state, doc)
		if err != nil {
			return Fail[S](err)
		}
		return Continue(next)
	})
}

// FoldWhile applies step to every document until it signals Done or Fail.
func FoldWhile[S any](ctx context.Context, c *Cursor, initial S, maxDocs int, step WhileStepFunc[S]) (S, error) {
	return FoldWhileM(ctx, c, initial, maxDocs, func(_ context.Context, state S, doc codec.Document) Signal[S] {
		return step(state, doc)
	})
}

// FoldWhileM is the document-granular driving loop. On Continue it keeps
// consuming, fetching further batches as needed; on Done it stops without
// consuming further documents or fetching further batches; on Fail it aborts
// with the step's error. The cursor is released in every outcome.
func FoldWhileM[S any](ctx context.Context, c *Cursor, initial S, maxDocs int, step WhileStepFuncM[S]) (S, error) {
	state := initial
	var n int
	for (maxDocs <= 0 || n < maxDocs) && c.Next(ctx) {
		sig := step(ctx, state, c.Current())
		if sig.err != nil {
			_ = c.Close(ctx)
			return state, sig.err
		}
		state = sig.state
		n++
		if sig.done {
			_ = c.Close(ctx)
			return state, nil
		}
	}

	if err := c.Err(); err != nil {
		_ = c.Close(ctx)
		return state, err
	}
	// Releasing the cursor is best-effort; a failed kill does not fail an
	// otherwise successful traversal.
	_ = c.Close(ctx)
	return state, nil
}

// FoldBatches applies step to each batch's documents instead of one
// document at a time.
func FoldBatches[S any](ctx context.Context, bc *BatchCursor, initial S, maxDocs int, step BatchStepFunc[S]) (S, error) {
	return FoldBatchesM(ctx, bc, initial, maxDocs, func(_ context.Context, state S, docs []codec.Document) Signal[S] {
		return step(state, docs)
	})
}

// FoldBatchesM is the batch-granular driving loop. When maxDocs lands inside
// a batch the step receives the truncated remainder, so a traversal consumes
// exactly min(maxDocs, total) documents regardless of batch boundaries.
func FoldBatchesM[S any](ctx context.Context, bc *BatchCursor, initial S, maxDocs int, step BatchStepFuncM[S]) (S, error) {
	state := initial
	var n int
	for (maxDocs <= 0 || n < maxDocs) && bc.Next(ctx) {
		docs := bc.Batch()
		if maxDocs > 0 && n+len(docs) > maxDocs {
			docs = docs[:maxDocs-n]
		}

		sig := step(ctx, state, docs)
		if sig.err != nil {
			_ = bc.Close(ctx)
			return state, sig.err
		}
		state = sig.state
		n += len(docs)
		if sig.done {
			_ = bc.Close(ctx)
			return state, nil
		}
	}

	if err := bc.Err(); err != nil {
		_ = bc.Close(ctx)
		return state, err
	}
	_ = bc.Close(ctx)
	return state, nil
}

// FoldResponses applies step to the raw server response for each batch,
// which carries metadata the materialized documents do not.
func FoldResponses[S any](ctx context.Context, bc *BatchCursor, initial S, maxDocs int, step ResponseStepFunc[S]) (S, error) {
	return FoldResponsesM(ctx, bc, initial, maxDocs, func(_ context.Context, state S, resp Response) Signal[S] {
		return step(state, resp)
	})
}

// FoldResponsesM is the response-granular driving loop.
func FoldResponsesM[S any](ctx context.Context, bc *BatchCursor, initial S, maxDocs int, step ResponseStepFuncM[S]) (S, error) {
	state := initial
	var n int
	for (maxDocs <= 0 || n < maxDocs) && bc.Next(ctx) {
		resp := bc.Response()

		sig := step(ctx, state, resp)
		if sig.err != nil {
			_ = bc.Close(ctx)
			return state, sig.err
		}
		state = sig.state
		n += resp.NumberReturned
		if sig.done {
			_ = bc.Close(ctx)
			return state, nil
		}
	}

	if err := bc.Err(); err != nil {
		_ = bc.Close(ctx)
		return state, err
	}
	_ = bc.Close(ctx)
	return state, nil
}
