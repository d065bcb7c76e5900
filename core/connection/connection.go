// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package connection

import (
	"context"

	"github.com/ikmak/mongo-datamover/core/codec"
	"github.com/ikmak/mongo-datamover/core/description"
)

// Connection is the narrow transport surface consumed by the data-movement
// core. Establishing, pooling and authenticating connections happens
// elsewhere; this package only needs an established connection that can run
// one command at a time and report the limits negotiated during its
// handshake.
type Connection interface {
	// Description returns the metadata snapshot for the server this
	// connection is attached to.
	Description() description.Server

	// RunCommand sends the command body to the server and returns its reply.
	// name is the command's name ("insert", "getMore", ...); it is the first
	// key of the body and is surfaced separately for monitoring.
	RunCommand(ctx context.Context, db string, name string, cmd codec.Document) (codec.Document, error)
}
