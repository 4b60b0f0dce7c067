package service

import "github.com/stegowave/wav16/internal/stego"

type audioService struct{}

// NewAudioService constructs the default AudioService.
func NewAudioService() AudioService {
	return &audioService{}
}

func (a *audioService) PSNR(original, modified []byte) (float64, error) {
	originalSamples, _, err := stego.DecodeWAV(original)
	if err != nil {
		return 0, err
	}
	modifiedSamples, _, err := stego.DecodeWAV(modified)
	if err != nil {
		return 0, err
	}
	return stego.CalculatePSNR(originalSamples, modifiedSamples), nil
}
