// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package writeconcern

import (
	"errors"
	"time"
)

// ErrInconsistent indicates that an inconsistent write concern was specified.
var ErrInconsistent = errors.New("a write concern cannot have both w=0 and j=true")

// ErrNegativeW indicates that a negative integer `w` field was specified.
var ErrNegativeW = errors.New("write concern `w` field cannot be a negative number")

// ErrNegativeWTimeout indicates that a negative WTimeout was specified.
var ErrNegativeWTimeout = errors.New("write concern `wtimeout` field cannot be negative")

// WriteConcern describes the level of acknowledgement requested from the
// server for write operations.
type WriteConcern struct {
	w        interface{}
	j        bool
	wTimeout time.Duration
}

// Option is an option to provide when creating a WriteConcern.
type Option func(concern *WriteConcern)

// New constructs a new WriteConcern.
func New(options ...Option) *WriteConcern {
	concern := &WriteConcern{}

	for _, option := range options {
		option(concern)
	}

	return concern
}

// W requests acknowledgement that write operations propagate to the specified
// number of instances.
func W(w int) Option {
	return func(concern *WriteConcern) {
		concern.w = w
	}
}

// WMajority requests acknowledgement that write operations propagate to the
// majority of instances.
func WMajority() Option {
	return func(concern *WriteConcern) {
		concern.w = "majority"
	}
}

// J requests acknowledgement that write operations are written to the journal.
func J(j bool) Option {
	return func(concern *WriteConcern) {
		concern.j = j
	}
}

// WTimeout specifies a time limit for the write concern.
func WTimeout(d time.Duration) Option {
	return func(concern *WriteConcern) {
		concern.wTimeout = d
	}
}

// IsValid checks whether the write concern is invalid.
func (wc *WriteConcern) IsValid() bool {
	if !wc.j {
		return true
	}

	switch w := wc.w.(type) {
	case int:
		return w != 0
	default:
		return true
	}
}

// Acknowledged indicates whether or not a write with the given write concern
// will be acknowledged.
func (wc *WriteConcern) Acknowledged() bool {
	if wc == nil || wc.j {
		return true
	}

	switch w := wc.w.(type) {
	case int:
		if w == 0 {
			return false
		}
	}

	return true
}

// View is the codec-marshalable form of a write concern, attached to a write
// command envelope as its writeConcern field.
type View struct {
	W        interface{} `bson:"w,omitempty"`
	J        bool        `bson:"j,omitempty"`
	WTimeout int64       `bson:"wtimeout,omitempty"`
}

// View returns the marshalable form of the write concern, or an error if the
// write concern is invalid.
func (wc *WriteConcern) View() (View, error) {
	if !wc.IsValid() {
		return View{}, ErrInconsistent
	}
	if w, ok := wc.w.(int); ok && w < 0 {
		return View{}, ErrNegativeW
	}
	if wc.wTimeout < 0 {
		return View{}, ErrNegativeWTimeout
	}

	return View{W: wc.w, J: wc.j, WTimeout: int64(wc.wTimeout / time.Millisecond)}, nil
}

// AckWrite returns true if a write concern represents an acknowledged write.
func AckWrite(wc *WriteConcern) bool {
	return wc == nil || wc.Acknowledged()
}
