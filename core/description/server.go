// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package description

// These are the default limits used when a server description does not report
// its own. They match the values advertised by a modern server.
const (
	DefaultMaxBatchCount   = 100000
	DefaultMaxDocumentSize = 16777216
	DefaultMaxMessageSize  = 48000000
)

// Server represents a description of a server. It is created from the
// handshake response and treated as a read-only snapshot for the duration of
// a call; the data-movement core never mutates it.
type Server struct {
	MaxBatchCount     uint32
	MaxDocumentSize   uint32
	MaxMessageSize    uint32
	SessionsSupported bool
	WireVersion       *VersionRange
}

// NewServer creates a server description with the default limits and no wire
// version information.
func NewServer() Server {
	return Server{
		MaxBatchCount:   DefaultMaxBatchCount,
		MaxDocumentSize: DefaultMaxDocumentSize,
		MaxMessageSize:  DefaultMaxMessageSize,
	}
}
