// Package jsoncodec registers a gRPC codec that encodes messages as JSON.
// Importing the package is enough for the server to accept calls made with
// grpc.CallContentSubtype(jsoncodec.Name).
package jsoncodec

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

// Name is the content subtype of the codec
const Name = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec implements encoding.Codec with encoding/json
type Codec struct{}

// Marshal encodes v as JSON
func (Codec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "json codec: marshal")
	}
	return b, nil
}

// Unmarshal decodes JSON into v
func (Codec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "json codec: unmarshal")
	}
	return nil
}

// Name returns the content subtype
func (Codec) Name() string {
	return Name
}
