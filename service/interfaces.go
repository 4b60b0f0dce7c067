// Package service wires the internal/stego codec behind small
// constructor-injected interfaces, so transports depend on the
// operation set rather than concrete codec types.
package service

import "github.com/stegowave/wav16/internal/config"

// SteganographyService exposes the codec's hide/extract/clear
// operations over complete WAV byte buffers, keyed by format tag and
// depth per request.
type SteganographyService interface {
	// Capacity reports the usable-bits-per-depth breakdown for a WAV
	// buffer's sample count.
	Capacity(wavData []byte, format string) (CapacityResult, error)

	// Hide embeds message into wavData under password at the given
	// depth, returning the re-encoded WAV bytes.
	Hide(wavData []byte, format string, depth int, message, password string) ([]byte, error)

	// Extract recovers the message hidden in wavData under password.
	Extract(wavData []byte, format string, depth int, password string) (string, error)

	// Clear erases any hidden message from wavData under password,
	// returning the re-encoded WAV bytes.
	Clear(wavData []byte, format string, depth int, password string) ([]byte, error)
}

// AudioService exposes quality metrics computed from before/after WAV
// buffers, kept separate from the steganography operations themselves.
type AudioService interface {
	// PSNR decodes both buffers and reports the peak signal-to-noise
	// ratio between their sample vectors.
	PSNR(original, modified []byte) (float64, error)
}

// CapacityResult reports usable payload bits at each supported LSB
// depth for a given sample count and configured occupancy.
type CapacityResult struct {
	UsableBitsByDepth map[int]int `json:"usable_bits_by_depth"`
	SampleCount       int         `json:"sample_count"`
}

// Settings is the subset of config.Settings the service package needs:
// the codec defaults every request uses (header, occupancy), and the
// depth it falls back to absent an explicit depth.
type Settings = config.StegoWaveLib
