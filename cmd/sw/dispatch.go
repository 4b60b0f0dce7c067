package main

import (
	"context"
	"fmt"
	"time"

	"github.com/stegowave/wav16/internal/api"
	"github.com/stegowave/wav16/internal/cliutil"
	"github.com/stegowave/wav16/internal/config"
	"github.com/stegowave/wav16/internal/grpcapi"
	"github.com/stegowave/wav16/internal/restapi"
	"github.com/stegowave/wav16/service"
)

// operation is one of hide/extract/clear, dispatched over whichever
// transport commonFlags.server names. Hide and clear produce audio
// bytes; extract produces text.
type operation struct {
	name     string // "hide", "extract", "clear"
	data     []byte
	message  string
	password string
	format   string
	lsbDeep  int
}

// dispatcher drives an operation either directly against the codec
// (in-process) or against a running REST/gRPC service. In auto mode,
// a failed REST attempt spawns a REST server bound to settings.REST in
// this process and retries once before falling back to the local
// codec. In rest or grpc mode with --start-server, an unreachable
// server makes the CLI spawn that transport's server in this process
// and retry; those modes never fall back to the local codec.
type dispatcher struct {
	settings      *config.Settings
	steganography service.SteganographyService
	flags         commonFlags
}

func newDispatcher(settings *config.Settings, flags commonFlags) *dispatcher {
	return &dispatcher{
		settings:      settings,
		steganography: service.NewSteganographyService(settings.StegoWaveLib),
		flags:         flags,
	}
}

func (d *dispatcher) runAudio(op operation) ([]byte, error) {
	switch d.flags.server {
	case "rest":
		return d.restAudio(op, d.flags.startServer)
	case "grpc":
		return d.grpcAudio(op, d.flags.startServer)
	default: // "auto"
		if out, err := d.restAudio(op, false); err == nil {
			return out, nil
		}
		if !d.tryAutoStart() {
			return d.localAudio(op)
		}
		if out, err := d.restAudio(op, false); err == nil {
			return out, nil
		}
		return d.localAudio(op)
	}
}

func (d *dispatcher) runText(op operation) (string, error) {
	switch d.flags.server {
	case "rest":
		return d.restText(op, d.flags.startServer)
	case "grpc":
		return d.grpcText(op, d.flags.startServer)
	default:
		if out, err := d.restText(op, false); err == nil {
			return out, nil
		}
		if !d.tryAutoStart() {
			return d.localText(op)
		}
		if out, err := d.restText(op, false); err == nil {
			return out, nil
		}
		return d.localText(op)
	}
}

func (d *dispatcher) localAudio(op operation) ([]byte, error) {
	switch op.name {
	case "hide":
		return d.steganography.Hide(op.data, op.format, op.lsbDeep, op.message, op.password)
	case "clear":
		return d.steganography.Clear(op.data, op.format, op.lsbDeep, op.password)
	default:
		return nil, fmt.Errorf("dispatch: %s does not produce audio", op.name)
	}
}

func (d *dispatcher) localText(op operation) (string, error) {
	if op.name != "extract" {
		return "", fmt.Errorf("dispatch: %s does not produce text", op.name)
	}
	return d.steganography.Extract(op.data, op.format, op.lsbDeep, op.password)
}

func (d *dispatcher) restClient() *restapi.Client {
	return restapi.NewClient("http://" + d.settings.REST.Address())
}

func (d *dispatcher) restAudio(op operation, startIfDown bool) ([]byte, error) {
	client := d.restClient()
	if err := client.Ping(); err != nil {
		if startIfDown && d.tryAutoStart() {
			client = d.restClient()
		} else {
			return nil, cliutil.NewConnectionFailed()
		}
	}
	var out []byte
	var err error
	switch op.name {
	case "hide":
		out, err = client.Hide(op.data, op.message, op.password, op.format, op.lsbDeep)
	case "clear":
		out, err = client.Clear(op.data, op.password, op.format, op.lsbDeep)
	default:
		return nil, fmt.Errorf("dispatch: %s does not produce audio", op.name)
	}
	if err != nil {
		return nil, cliutil.NewResponse("%v", err)
	}
	return out, nil
}

func (d *dispatcher) restText(op operation, startIfDown bool) (string, error) {
	client := d.restClient()
	if err := client.Ping(); err != nil {
		if startIfDown && d.tryAutoStart() {
			client = d.restClient()
		} else {
			return "", cliutil.NewConnectionFailed()
		}
	}
	out, err := client.Extract(op.data, op.password, op.format, op.lsbDeep)
	if err != nil {
		return "", cliutil.NewResponse("%v", err)
	}
	return out, nil
}

func (d *dispatcher) grpcAudio(op operation, startIfDown bool) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := grpcapi.Dial(ctx, d.settings.GRPC.Address())
	if err != nil {
		if startIfDown && d.tryAutoStartGRPC() {
			client, err = grpcapi.Dial(ctx, d.settings.GRPC.Address())
		}
		if err != nil {
			return nil, cliutil.NewConnectionFailed()
		}
	}
	defer client.Close()

	var out []byte
	switch op.name {
	case "hide":
		out, err = client.Hide(ctx, op.data, op.message, op.password, op.format, op.lsbDeep)
	case "clear":
		out, err = client.Clear(ctx, op.data, op.password, op.format, op.lsbDeep)
	default:
		return nil, fmt.Errorf("dispatch: %s does not produce audio", op.name)
	}
	if err != nil {
		return nil, cliutil.NewResponse("%v", err)
	}
	return out, nil
}

func (d *dispatcher) grpcText(op operation, startIfDown bool) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := grpcapi.Dial(ctx, d.settings.GRPC.Address())
	if err != nil {
		if startIfDown && d.tryAutoStartGRPC() {
			client, err = grpcapi.Dial(ctx, d.settings.GRPC.Address())
		}
		if err != nil {
			return "", cliutil.NewConnectionFailed()
		}
	}
	defer client.Close()

	out, err := client.Extract(ctx, op.data, op.password, op.format, op.lsbDeep)
	if err != nil {
		return "", cliutil.NewResponse("%v", err)
	}
	return out, nil
}

// localServerCtx lives for the remainder of this CLI invocation; an
// auto-started server is torn down only when the process exits.
var localServerCtx = context.Background()

var autoStartedREST bool
var autoStartedGRPC bool

// tryAutoStart spawns a REST server bound to settings.REST in this
// process, waiting briefly for it to come up.
func (d *dispatcher) tryAutoStart() bool {
	if autoStartedREST {
		return true
	}
	audioService := service.NewAudioService()
	go func() {
		_ = api.Run(localServerCtx, d.settings, d.steganography, audioService)
	}()
	autoStartedREST = true
	return waitForHealth(d.restClient(), 3*time.Second)
}

func (d *dispatcher) tryAutoStartGRPC() bool {
	if autoStartedGRPC {
		return true
	}
	go func() {
		_ = grpcapi.Run(localServerCtx, d.settings, d.steganography)
	}()
	autoStartedGRPC = true
	time.Sleep(300 * time.Millisecond)
	return true
}

func waitForHealth(client *restapi.Client, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if client.Ping() == nil {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return client.Ping() == nil
}
