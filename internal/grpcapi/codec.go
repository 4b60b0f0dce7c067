// Package grpcapi implements the gRPC transport: three
// client-streaming RPCs (HideMessage, ExtractMessage, ClearMessage)
// chunking audio bytes the same way the REST transport accepts whole
// files.
//
// The build has no protoc step. Instead of protoc-generated bindings,
// the package registers a plain JSON codec with grpc-go's pluggable
// encoding.Codec interface and defines the wire messages as ordinary
// Go structs. The transport is still real gRPC (HTTP/2 framing,
// streaming, status codes); only the message encoding is JSON instead
// of protobuf. stegowave.proto records the wire contract this
// mirrors, and clients must select the codec via the "json"
// content-subtype.
package grpcapi

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
