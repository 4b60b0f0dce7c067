package models

// CapacityResponse reports usable payload bits at every supported LSB
// depth for an uploaded WAV file, keyed by depth (1..16), plus the
// sample count the calculation was performed against.
type CapacityResponse struct {
	SampleCount       int         `json:"sample_count"`
	UsableBitsByDepth map[int]int `json:"usable_bits_by_depth"`
}
