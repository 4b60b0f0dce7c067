package stego

import (
	"bytes"
	"encoding/binary"
)

// AudioSpec is the container metadata preserved across a decode/encode
// round-trip. Channel count and sample rate are carried opaquely; only
// bits-per-sample is interpreted (it must be 16).
type AudioSpec struct {
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
}

const (
	pcmFormatTag = 1

	riffHeaderSize = 12 // "RIFF" + size + "WAVE"
	chunkHeaderSize = 8 // id + size
)

// DecodeWAV parses a complete WAV byte buffer: walk RIFF sub-chunks
// looking for "fmt " and "data", tolerating unknown chunks and
// odd-sized chunk padding along the way.
func DecodeWAV(data []byte) ([]int16, AudioSpec, error) {
	if len(data) < riffHeaderSize {
		return nil, AudioSpec{}, errInvalidFile("file too small to be a WAV container")
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, AudioSpec{}, errInvalidFile("missing RIFF/WAVE magic")
	}

	var spec AudioSpec
	var sampleData []byte
	haveFmt := false
	haveData := false

	pos := riffHeaderSize
	for pos+chunkHeaderSize <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + chunkHeaderSize
		if size < 0 || body+size > len(data) {
			return nil, AudioSpec{}, errInvalidFile("chunk size exceeds buffer")
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, AudioSpec{}, errInvalidFile("fmt chunk too small")
			}
			spec.NumChannels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			spec.SampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			spec.BitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			haveFmt = true
		case "data":
			sampleData = data[body : body+size]
			haveData = true
		}

		pos = body + size
		if size%2 == 1 { // chunks are word-aligned; an odd payload is padded
			pos++
		}
	}

	if !haveFmt {
		return nil, AudioSpec{}, errInvalidFile("missing fmt chunk")
	}
	if !haveData {
		return nil, AudioSpec{}, errInvalidFile("missing data chunk")
	}
	if spec.BitsPerSample != 16 {
		return nil, AudioSpec{}, errInvalidFile("Only 16-bit WAV file supported")
	}
	if len(sampleData)%2 != 0 {
		return nil, AudioSpec{}, errInvalidFile("data chunk is not sample-aligned")
	}

	samples := make([]int16, len(sampleData)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(sampleData[i*2 : i*2+2]))
	}
	return samples, spec, nil
}

// EncodeWAV writes spec and samples out as a structurally valid
// 16-bit PCM WAV buffer. Byte-for-byte identity with whatever produced
// spec is not promised outside the sample data region; the container
// is rebuilt with a minimal fmt chunk.
func EncodeWAV(spec AudioSpec, samples []int16) ([]byte, error) {
	if spec.BitsPerSample != 16 {
		return nil, errOther("EncodeWAV only supports 16-bit PCM")
	}

	dataSize := len(samples) * 2
	blockAlign := spec.NumChannels * (spec.BitsPerSample / 8)
	byteRate := spec.SampleRate * uint32(blockAlign)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	riffSize := uint32(4 + (chunkHeaderSize + 16) + (chunkHeaderSize + dataSize))
	_ = binary.Write(&buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(pcmFormatTag))
	_ = binary.Write(&buf, binary.LittleEndian, spec.NumChannels)
	_ = binary.Write(&buf, binary.LittleEndian, spec.SampleRate)
	_ = binary.Write(&buf, binary.LittleEndian, byteRate)
	_ = binary.Write(&buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(&buf, binary.LittleEndian, spec.BitsPerSample)

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range samples {
		_ = binary.Write(&buf, binary.LittleEndian, s)
	}

	return buf.Bytes(), nil
}
