package stego

import "math"

// CalculatePSNR reports the peak signal-to-noise ratio in dB between
// two equal-length sample buffers. Returns +Inf when the buffers are
// identical and NaN when they are not comparable.
func CalculatePSNR(original, modified []int16) float64 {
	if len(original) != len(modified) || len(original) == 0 {
		return math.NaN()
	}

	var sumSquaredError float64
	for i := range original {
		diff := float64(original[i]) - float64(modified[i])
		sumSquaredError += diff * diff
	}
	mse := sumSquaredError / float64(len(original))
	if mse == 0 {
		return math.Inf(1)
	}
	const maxSampleValue = 32767.0
	return 20 * math.Log10(maxSampleValue/math.Sqrt(mse))
}
