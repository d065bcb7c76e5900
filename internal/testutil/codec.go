package testutil

import (
	"encoding/json"

	"github.com/ikmak/mongo-datamover/core/codec"
)

// jsonCodec is a Codec backed by encoding/json. Tests only need a codec
// with stable sizes and lossless round trips; the production serialization
// format is a collaborator outside this module.
type jsonCodec struct{}

// Codec returns a JSON-backed codec for tests.
func Codec() codec.Codec { return jsonCodec{} }

func (jsonCodec) Marshal(val interface{}) (codec.Document, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	return codec.Document(b), nil
}

func (jsonCodec) Unmarshal(doc codec.Document, val interface{}) error {
	return json.Unmarshal(doc, val)
}

func (jsonCodec) NewEmptyDocument() codec.Document {
	return codec.Document("{}")
}
