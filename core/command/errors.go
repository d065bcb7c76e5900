// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package command

import (
	"errors"
	"fmt"

	"github.com/ikmak/mongo-datamover/core/result"
)

var (
	// ErrUnacknowledgedWrite occurs when a write was sent with a w:0 write
	// concern; no result can be reported for it.
	ErrUnacknowledgedWrite = errors.New("unacknowledged write")
	// ErrBatchWriteUnsupported occurs when the negotiated protocol version
	// predates batched write commands.
	ErrBatchWriteUnsupported = errors.New("server does not support batched write commands")
	// ErrNoCommandResponse occurs when the server sent no response document
	// to a command.
	ErrNoCommandResponse = errors.New("no command response document")
)

// Error is a command execution error from the server.
type Error struct {
	Code    int32
	Message string
	Name    string
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("(%v) %v", e.Name, e.Message)
	}
	return e.Message
}

// ResponseError is an error parsing the response to a command.
type ResponseError struct {
	Message string
	Wrapped error
}

// NewCommandResponseError creates a ResponseError.
func NewCommandResponseError(msg string, err error) ResponseError {
	return ResponseError{Message: msg, Wrapped: err}
}

// Error implements the error interface.
func (e ResponseError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Wrapped)
	}
	return e.Message
}

// writeCommandError converts a not-ok write result into an Error carrying
// the server's diagnostic.
func writeCommandError(res result.Write) error {
	if res.IsOK() {
		return nil
	}

	msg := res.ErrMsg
	if msg == "" {
		msg = "write command failed"
	}
	return Error{Code: res.Code, Message: msg}
}

// cursorCommandError converts a not-ok cursor reply into an Error carrying
// the server's diagnostic.
func cursorCommandError(res result.Cursor) error {
	if res.IsOK() {
		return nil
	}

	msg := res.ErrMsg
	if msg == "" {
		msg = "cursor command failed"
	}
	return Error{Code: res.Code, Message: msg}
}
