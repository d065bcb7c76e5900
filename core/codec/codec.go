// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package codec

import "fmt"

// Document is an opaque, already-serialized payload. A Document is immutable
// once produced and must not be modified after it has been handed to a
// command or returned from one.
type Document []byte

// Size returns the serialized size of the document in bytes.
func (d Document) Size() int { return len(d) }

// Codec converts typed values to and from Documents. Implementations wrap a
// concrete serialization format; this package treats the format as opaque and
// only relies on documents having a well defined byte size.
type Codec interface {
	// Marshal encodes val into a new Document.
	Marshal(val interface{}) (Document, error)

	// Unmarshal decodes doc into val.
	Unmarshal(doc Document, val interface{}) error

	// NewEmptyDocument returns a document with no elements.
	NewEmptyDocument() Document
}

// MarshalError is returned when a value cannot be encoded into a Document.
// It fails the enclosing call before any network activity takes place.
type MarshalError struct {
	Value interface{}
	Err   error
}

// Error implements the error interface.
func (e MarshalError) Error() string {
	return fmt.Sprintf("cannot marshal type %T: %v", e.Value, e.Err)
}
