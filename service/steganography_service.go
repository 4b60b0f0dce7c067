package service

import (
	"github.com/stegowave/wav16/internal/config"
	"github.com/stegowave/wav16/internal/stego"
)

type steganographyService struct {
	lib config.StegoWaveLib
}

// NewSteganographyService constructs the default SteganographyService
// around the codec defaults every request falls back to.
func NewSteganographyService(lib config.StegoWaveLib) SteganographyService {
	return &steganographyService{lib: lib}
}

func (s *steganographyService) codecFor(format string, depth int) (*stego.Codec, error) {
	if depth <= 0 {
		depth = s.lib.DefaultLsbDeep
	}
	return stego.GetCodec(format, depth, stego.Params{
		Header:    s.lib.Header,
		Occupancy: s.lib.MaxOccupancy,
	})
}

func (s *steganographyService) Capacity(wavData []byte, format string) (CapacityResult, error) {
	samples, _, err := stego.DecodeWAV(wavData)
	if err != nil {
		return CapacityResult{}, err
	}
	result := CapacityResult{
		UsableBitsByDepth: make(map[int]int, 16),
		SampleCount:       len(samples),
	}
	for depth := 1; depth <= 16; depth++ {
		result.UsableBitsByDepth[depth] = stego.UsableBits(len(samples), depth, s.lib.MaxOccupancy)
	}
	return result, nil
}

func (s *steganographyService) Hide(wavData []byte, format string, depth int, message, password string) ([]byte, error) {
	c, err := s.codecFor(format, depth)
	if err != nil {
		return nil, err
	}
	return c.HideBytes(wavData, message, password)
}

func (s *steganographyService) Extract(wavData []byte, format string, depth int, password string) (string, error) {
	c, err := s.codecFor(format, depth)
	if err != nil {
		return "", err
	}
	return c.ExtractBytes(wavData, password)
}

func (s *steganographyService) Clear(wavData []byte, format string, depth int, password string) ([]byte, error) {
	c, err := s.codecFor(format, depth)
	if err != nil {
		return nil, err
	}
	return c.ClearBytes(wavData, password)
}
