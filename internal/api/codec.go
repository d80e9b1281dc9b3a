// Package api is the MovieDeck wire contract: message types, the gRPC service
// description, a typed client stub and the error mapping shared by both ends.
//
// Messages are plain Go structs carried by a JSON codec registered under the
// "json" content subtype, so no code generation step is involved.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype the service speaks.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
