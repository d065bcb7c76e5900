package description

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServerDefaults(t *testing.T) {
	desc := NewServer()
	assert.EqualValues(t, DefaultMaxBatchCount, desc.MaxBatchCount)
	assert.EqualValues(t, DefaultMaxDocumentSize, desc.MaxDocumentSize)
	assert.EqualValues(t, DefaultMaxMessageSize, desc.MaxMessageSize)
	assert.Nil(t, desc.WireVersion)
}

func TestBatchWriteSupported(t *testing.T) {
	testCases := []struct {
		name      string
		wv        *VersionRange
		supported bool
	}{
		{"no wire version", nil, false},
		{"too old", &VersionRange{Min: 0, Max: 1}, false},
		{"minimum", &VersionRange{Min: 0, Max: BatchWriteMinWireVersion}, true},
		{"modern", &VersionRange{Min: 6, Max: 8}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			desc := NewServer()
			desc.WireVersion = tc.wv
			assert.Equal(t, tc.supported, BatchWriteSupported(desc))
		})
	}
}

func TestSessionsSupported(t *testing.T) {
	desc := NewServer()
	desc.WireVersion = &VersionRange{Min: 0, Max: 8}
	assert.False(t, SessionsSupported(desc), "the handshake must advertise sessions")

	desc.SessionsSupported = true
	assert.True(t, SessionsSupported(desc))

	desc.WireVersion = &VersionRange{Min: 0, Max: SessionsMinWireVersion - 1}
	assert.False(t, SessionsSupported(desc))
}

func TestVersionRange(t *testing.T) {
	vr := NewVersionRange(2, 6)
	assert.True(t, vr.Includes(2))
	assert.True(t, vr.Includes(4))
	assert.True(t, vr.Includes(6))
	assert.False(t, vr.Includes(1))
	assert.False(t, vr.Includes(7))
	assert.Equal(t, "[2, 6]", vr.String())
}
