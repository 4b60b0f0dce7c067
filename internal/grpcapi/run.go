package grpcapi

import (
	"context"
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"

	"github.com/stegowave/wav16/internal/config"
	"github.com/stegowave/wav16/service"
)

// Run starts the gRPC transport and blocks until ctx is cancelled,
// then stops gracefully, mirroring internal/api.Run's shape for the
// REST transport.
func Run(ctx context.Context, settings *config.Settings, steganographyService service.SteganographyService) error {
	lis, err := net.Listen("tcp", settings.GRPC.Address())
	if err != nil {
		return fmt.Errorf("grpcapi: listen on %s: %w", settings.GRPC.Address(), err)
	}

	gs := grpc.NewServer()
	NewServer(steganographyService).Register(gs)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("gRPC server listening on %s", settings.GRPC.Address())
		if err := gs.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("grpc server: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down gRPC server...")
	gs.GracefulStop()
	log.Println("gRPC server stopped")
	return nil
}
