package grpcapi

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client dials a StegoWave gRPC server and drives the three streaming
// RPCs, chunking uploads at ChunkSize.
type Client struct {
	conn *grpc.ClientConn
}

// Dial opens a plaintext connection to target ("host:port").
func Dial(ctx context.Context, target string) (*Client, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("grpcapi: dial %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

func chunks(data []byte, size int) [][]byte {
	if len(data) == 0 {
		return [][]byte{{}}
	}
	var out [][]byte
	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		out = append(out, data[i:end])
	}
	return out
}

func (c *Client) stream(ctx context.Context, method string, meta AudioChunk, data []byte) (grpc.ClientStream, error) {
	desc := &grpc.StreamDesc{StreamName: method, ClientStreams: true}
	stream, err := c.conn.NewStream(ctx, desc, "/stegowave.StegoWave/"+method)
	if err != nil {
		return nil, fmt.Errorf("grpcapi: open stream %s: %w", method, err)
	}

	parts := chunks(data, ChunkSize)
	first := meta
	first.Data = parts[0]
	if err := stream.SendMsg(&first); err != nil {
		return nil, fmt.Errorf("grpcapi: send first chunk: %w", err)
	}
	for _, part := range parts[1:] {
		if err := stream.SendMsg(&AudioChunk{Data: part}); err != nil {
			return nil, fmt.Errorf("grpcapi: send chunk: %w", err)
		}
	}
	if err := stream.CloseSend(); err != nil {
		return nil, fmt.Errorf("grpcapi: close send: %w", err)
	}
	return stream, nil
}

// Hide calls the HideMessage RPC and returns the re-encoded WAV bytes.
func (c *Client) Hide(ctx context.Context, data []byte, message, password, format string, lsbDeep int) ([]byte, error) {
	stream, err := c.stream(ctx, "HideMessage", AudioChunk{Message: message, Password: password, Format: format, LsbDeep: int32(lsbDeep)}, data)
	if err != nil {
		return nil, err
	}
	var reply AudioReply
	if err := stream.RecvMsg(&reply); err != nil {
		return nil, fmt.Errorf("grpcapi: hide: %w", err)
	}
	return reply.Data, nil
}

// Extract calls the ExtractMessage RPC and returns the recovered text.
func (c *Client) Extract(ctx context.Context, data []byte, password, format string, lsbDeep int) (string, error) {
	stream, err := c.stream(ctx, "ExtractMessage", AudioChunk{Password: password, Format: format, LsbDeep: int32(lsbDeep)}, data)
	if err != nil {
		return "", err
	}
	var reply TextReply
	if err := stream.RecvMsg(&reply); err != nil {
		return "", fmt.Errorf("grpcapi: extract: %w", err)
	}
	return reply.Message, nil
}

// Clear calls the ClearMessage RPC and returns the cleaned WAV bytes.
func (c *Client) Clear(ctx context.Context, data []byte, password, format string, lsbDeep int) ([]byte, error) {
	stream, err := c.stream(ctx, "ClearMessage", AudioChunk{Password: password, Format: format, LsbDeep: int32(lsbDeep)}, data)
	if err != nil {
		return nil, err
	}
	var reply AudioReply
	if err := stream.RecvMsg(&reply); err != nil {
		return nil, fmt.Errorf("grpcapi: clear: %w", err)
	}
	return reply.Data, nil
}
