package stego

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Params is the codec's immutable, per-request configuration, derived
// from ServiceSettings (see internal/config): the header that
// authenticates a password and the occupancy fraction the PRNG index
// stream is permitted to visit. Depth is supplied separately to
// GetCodec/NewCodec because it varies per request while Params
// typically does not.
type Params struct {
	Header    string
	Occupancy int // 1..100
}

// Codec implements the embed/extract/clear triplet for 16-bit PCM WAV
// samples at a fixed depth. A Codec has no mutable state after
// construction and is safe for concurrent use.
type Codec struct {
	depth  int
	params Params
}

// NewCodec validates depth and params and returns a ready Codec.
func NewCodec(depth int, params Params) (*Codec, error) {
	if depth < 1 || depth > 16 {
		return nil, errOther(fmt.Sprintf("lsb depth must be in [1,16], got %d", depth))
	}
	if params.Header == "" {
		return nil, errOther("header must be non-empty")
	}
	if params.Occupancy <= 0 || params.Occupancy > 100 {
		return nil, errOther(fmt.Sprintf("occupancy must be in (0,100], got %d", params.Occupancy))
	}
	return &Codec{depth: depth, params: params}, nil
}

// Depth reports the configured LSB depth.
func (c *Codec) Depth() int { return c.depth }

func buildPayload(header, message string) []byte {
	payload := make([]byte, 0, len(header)+len(message)+1)
	payload = append(payload, header...)
	payload = append(payload, message...)
	payload = append(payload, 0)
	return payload
}

// Embed hides message in samples under password. Capacity is checked
// before any mutation; on failure samples are left untouched.
func (c *Codec) Embed(samples []int16, message, password string) error {
	payload := buildPayload(c.params.Header, message)
	required, ok := CheckCapacity(len(payload), len(samples), c.depth, c.params.Occupancy)
	if !ok {
		return errNotEnoughSamples(required)
	}

	stream := NewIndexStream(len(samples), password, c.params.Occupancy)
	mask := uint16(1<<uint(c.depth) - 1)
	totalBits := len(payload) * 8
	bitsWritten := 0

	for bitsWritten < totalBits {
		idx, ok := stream.Next()
		if !ok {
			// Capacity was validated above; this can only happen if
			// UsableBits and the index stream's cap disagree.
			return errOther("index stream exhausted before payload was fully written")
		}
		var chunk uint16
		for b := 0; b < c.depth; b++ {
			var bit uint16
			if bitsWritten < totalBits {
				bit = getBit(payload, bitsWritten)
				bitsWritten++
			}
			chunk = chunk<<1 | bit
		}
		samples[idx] = int16(uint16(samples[idx])&^mask | chunk)
	}
	return nil
}

// Extract recovers the message hidden in samples under password.
// Returns ErrIncorrectPassword if the header does not match, or
// ErrFailedToReceiveMessage if the index stream exhausts before a NUL
// terminator is seen.
func (c *Codec) Extract(samples []int16, password string) (string, error) {
	stream := NewIndexStream(len(samples), password, c.params.Occupancy)
	unpacker := newBitUnpacker(stream, samples, c.depth)

	header := make([]byte, len(c.params.Header))
	for i := range header {
		b, ok := unpacker.ReadByte()
		if !ok {
			return "", ErrIncorrectPassword
		}
		header[i] = b
	}
	if string(header) != c.params.Header {
		return "", ErrIncorrectPassword
	}

	var result []byte
	for {
		b, ok := unpacker.ReadByte()
		if !ok {
			return "", ErrFailedToReceiveMessage
		}
		if b == 0 {
			break
		}
		result = append(result, b)
	}

	if !utf8.Valid(result) {
		// Best effort: invalid sequences drop out rather than failing.
		return strings.ToValidUTF8(string(result), ""), nil
	}
	return string(result), nil
}

// Clear validates password then zeroes the low-depth bits of every
// sample the (re-derived) index stream visits, destroying any hidden
// message and the header itself so a later Extract fails with
// ErrIncorrectPassword regardless of password.
func (c *Codec) Clear(samples []int16, password string) error {
	validate := NewIndexStream(len(samples), password, c.params.Occupancy)
	unpacker := newBitUnpacker(validate, samples, c.depth)

	header := make([]byte, len(c.params.Header))
	for i := range header {
		b, ok := unpacker.ReadByte()
		if !ok {
			return ErrIncorrectPassword
		}
		header[i] = b
	}
	if string(header) != c.params.Header {
		return ErrIncorrectPassword
	}

	mutate := validate.Clone()
	maskClear := ^uint16(1<<uint(c.depth) - 1)
	for {
		idx, ok := mutate.Next()
		if !ok {
			break
		}
		samples[idx] = int16(uint16(samples[idx]) & maskClear)
	}
	return nil
}

// HideBytes decodes a WAV byte buffer, embeds message, and re-encodes.
func (c *Codec) HideBytes(wavIn []byte, message, password string) ([]byte, error) {
	samples, spec, err := DecodeWAV(wavIn)
	if err != nil {
		return nil, err
	}
	if err := c.Embed(samples, message, password); err != nil {
		return nil, err
	}
	return EncodeWAV(spec, samples)
}

// ExtractBytes decodes a WAV byte buffer and recovers its hidden message.
func (c *Codec) ExtractBytes(wavIn []byte, password string) (string, error) {
	samples, _, err := DecodeWAV(wavIn)
	if err != nil {
		return "", err
	}
	return c.Extract(samples, password)
}

// ClearBytes decodes a WAV byte buffer, erases its hidden message, and re-encodes.
func (c *Codec) ClearBytes(wavIn []byte, password string) ([]byte, error) {
	samples, spec, err := DecodeWAV(wavIn)
	if err != nil {
		return nil, err
	}
	if err := c.Clear(samples, password); err != nil {
		return nil, err
	}
	return EncodeWAV(spec, samples)
}
