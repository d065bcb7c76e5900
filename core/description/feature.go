// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package description

// BatchWriteMinWireVersion is the minimum wire version that supports the
// batched write commands issued by this driver.
const BatchWriteMinWireVersion = 2

// SessionsMinWireVersion is the minimum wire version that supports sessions.
const SessionsMinWireVersion = 6

// BatchWriteSupported returns whether the described server speaks a protocol
// version recent enough for batched write commands.
func BatchWriteSupported(s Server) bool {
	return s.WireVersion != nil && s.WireVersion.Max >= BatchWriteMinWireVersion
}

// SessionsSupported returns whether the described server supports sessions.
func SessionsSupported(s Server) bool {
	return s.SessionsSupported && s.WireVersion != nil && s.WireVersion.Max >= SessionsMinWireVersion
}
