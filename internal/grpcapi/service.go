package grpcapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/stegowave/wav16/internal/stego"
	"github.com/stegowave/wav16/service"
)

// maxAggregateBytes bounds the reassembled upload regardless of
// transport-level message size limits: chunks are accumulated in
// application code, so the sum needs its own cap even when no single
// RecvMsg trips grpc.MaxRecvMsgSize.
const maxAggregateBytes = 100 * 1024 * 1024

// ChunkSize is the client-side send chunk size for uploads.
const ChunkSize = 1024 * 1024

// stegoWaveServer is an empty interface used only so grpc.ServiceDesc
// has something to type-check Server against at RegisterService time.
type stegoWaveServer interface{}

// Server implements the StegoWave gRPC service described in
// stegowave.proto against *Server's Hide/Extract/Clear handlers.
type Server struct {
	steganographyService service.SteganographyService
}

// NewServer constructs a gRPC service handler around the same
// SteganographyService the REST transport uses.
func NewServer(steganographyService service.SteganographyService) *Server {
	return &Server{steganographyService: steganographyService}
}

// Register attaches the service to a *grpc.Server.
func (s *Server) Register(gs *grpc.Server) {
	gs.RegisterService(&ServiceDesc, s)
}

// ServiceDesc wires the three client-streaming RPCs by hand, since no
// protoc-generated registration code exists in this tree (see the
// package doc comment in codec.go).
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "stegowave.StegoWave",
	HandlerType: (*stegoWaveServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{StreamName: "HideMessage", Handler: hideMessageHandler, ClientStreams: true},
		{StreamName: "ExtractMessage", Handler: extractMessageHandler, ClientStreams: true},
		{StreamName: "ClearMessage", Handler: clearMessageHandler, ClientStreams: true},
	},
	Metadata: "stegowave.proto",
}

func hideMessageHandler(srv interface{}, stream grpc.ServerStream) error {
	s := srv.(*Server)
	data, meta, err := collect(stream)
	if err != nil {
		return err
	}
	if err := validateMeta(meta); err != nil {
		return err
	}
	stegoAudio, err := s.steganographyService.Hide(data, meta.Format, int(meta.LsbDeep), meta.Message, meta.Password)
	if err != nil {
		return mapError(err)
	}
	return stream.SendMsg(&AudioReply{Data: stegoAudio})
}

func extractMessageHandler(srv interface{}, stream grpc.ServerStream) error {
	s := srv.(*Server)
	data, meta, err := collect(stream)
	if err != nil {
		return err
	}
	if err := validateMeta(meta); err != nil {
		return err
	}
	message, err := s.steganographyService.Extract(data, meta.Format, int(meta.LsbDeep), meta.Password)
	if err != nil {
		return mapError(err)
	}
	return stream.SendMsg(&TextReply{Message: message})
}

func clearMessageHandler(srv interface{}, stream grpc.ServerStream) error {
	s := srv.(*Server)
	data, meta, err := collect(stream)
	if err != nil {
		return err
	}
	if err := validateMeta(meta); err != nil {
		return err
	}
	cleaned, err := s.steganographyService.Clear(data, meta.Format, int(meta.LsbDeep), meta.Password)
	if err != nil {
		return mapError(err)
	}
	return stream.SendMsg(&AudioReply{Data: cleaned})
}

// validateMeta rejects an unknown format tag or an explicitly
// out-of-range lsb_deep before the codec is ever invoked, mirroring
// internal/api's parseFormat/parseLsbDeep so both transports agree on
// what counts as a client error.
func validateMeta(meta AudioChunk) error {
	if meta.Format != "" && meta.Format != "wav16" {
		return status.Errorf(codes.InvalidArgument, "unsupported format %q", meta.Format)
	}
	if meta.LsbDeep != 0 && (meta.LsbDeep < 1 || meta.LsbDeep > 16) {
		return status.Error(codes.InvalidArgument, "lsb_deep must be between 1 and 16")
	}
	return nil
}

// collect drains a client-streamed upload, keeping the metadata fields
// carried by the first chunk.
func collect(stream grpc.ServerStream) ([]byte, AudioChunk, error) {
	var buf bytes.Buffer
	var meta AudioChunk
	seenFirst := false
	for {
		var chunk AudioChunk
		if err := stream.RecvMsg(&chunk); err != nil {
			if err == io.EOF {
				break
			}
			return nil, AudioChunk{}, err
		}
		if !seenFirst {
			meta = chunk
			seenFirst = true
		}
		buf.Write(chunk.Data)
		if buf.Len() > maxAggregateBytes {
			return nil, AudioChunk{}, status.Error(codes.InvalidArgument, "upload exceeds maximum size")
		}
	}
	if !seenFirst {
		return nil, AudioChunk{}, status.Error(codes.InvalidArgument, "empty upload stream")
	}
	if meta.Format == "" {
		meta.Format = "wav16"
	}
	return buf.Bytes(), meta, nil
}

// mapError mirrors api.sendStegoError's status mapping:
// IncorrectPassword and UnsupportedFormat are client errors; capacity
// exceeded and WAV decode failures are both internal.
func mapError(err error) error {
	var serr *stego.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case stego.KindIncorrectPassword, stego.KindUnsupportedFormat:
			return status.Error(codes.InvalidArgument, serr.Error())
		default:
			return status.Error(codes.Internal, serr.Error())
		}
	}
	return status.Error(codes.Internal, fmt.Sprintf("processing error: %v", err))
}
