package stego

import (
	"fmt"
	"testing"
)

func mustCodec(t *testing.T, depth int, occupancy int, header string) *Codec {
	t.Helper()
	c, err := NewCodec(depth, Params{Header: header, Occupancy: occupancy})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func zeroSamples(n int) []int16 { return make([]int16, n) }

func constSamples(n int, v int16) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// N=10000 zero samples, D=1, password="qwerty1234",
// message="Hello World!" hides and round-trips; wrong password fails.
func TestEmbedExtractRoundTrip(t *testing.T) {
	c := mustCodec(t, 1, 70, "STEG")
	samples := zeroSamples(10000)

	if err := c.Embed(samples, "Hello World!", "qwerty1234"); err != nil {
		t.Fatalf("Embed: %v", err)
	}

	got, err := c.Extract(samples, "qwerty1234")
	if err != nil {
		t.Fatalf("Extract with correct password: %v", err)
	}
	if got != "Hello World!" {
		t.Fatalf("Extract = %q, want %q", got, "Hello World!")
	}

	if _, err := c.Extract(samples, "wrong_password"); err != ErrIncorrectPassword {
		t.Fatalf("Extract with wrong password = %v, want ErrIncorrectPassword", err)
	}
}

// N=1000 samples all = 8, D=1..16, message="{i} test {i}",
// password="_": every depth round-trips.
func TestEmbedExtractAllDepths(t *testing.T) {
	for depth := 1; depth <= 16; depth++ {
		depth := depth
		t.Run(fmt.Sprintf("depth=%d", depth), func(t *testing.T) {
			c := mustCodec(t, depth, 70, "STEG")
			samples := constSamples(1000, 8)
			message := fmt.Sprintf("%d test %d", depth, depth)

			if err := c.Embed(samples, message, "_"); err != nil {
				t.Fatalf("Embed: %v", err)
			}
			got, err := c.Extract(samples, "_")
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got != message {
				t.Fatalf("Extract = %q, want %q", got, message)
			}
		})
	}
}

// Hide with "qwerty1", wrong passwords fail, correct
// password extracts repeatably (Extract must not mutate state).
func TestPasswordRejectionAndRepeatability(t *testing.T) {
	c := mustCodec(t, 1, 70, "STEG")
	samples := zeroSamples(1000)

	if err := c.Embed(samples, "test", "qwerty1"); err != nil {
		t.Fatalf("Embed: %v", err)
	}

	for _, wrong := range []string{"qwerty", "qwerty2"} {
		if _, err := c.Extract(samples, wrong); err != ErrIncorrectPassword {
			t.Fatalf("Extract(%q) = %v, want ErrIncorrectPassword", wrong, err)
		}
	}

	for i := 0; i < 2; i++ {
		got, err := c.Extract(samples, "qwerty1")
		if err != nil {
			t.Fatalf("Extract #%d: %v", i, err)
		}
		if got != "test" {
			t.Fatalf("Extract #%d = %q, want %q", i, got, "test")
		}
	}
}

// Clear erases the header; any subsequent extract fails.
func TestClearInvalidatesMessage(t *testing.T) {
	c := mustCodec(t, 1, 70, "STEG")
	samples := zeroSamples(10000)

	if err := c.Embed(samples, "Hello World!", "qwerty1234"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if err := c.Clear(samples, "qwerty1234"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := c.Extract(samples, "qwerty1234"); err != ErrIncorrectPassword {
		t.Fatalf("Extract after Clear = %v, want ErrIncorrectPassword", err)
	}
}

func TestClearRejectsWrongPasswordWithoutMutating(t *testing.T) {
	c := mustCodec(t, 1, 70, "STEG")
	samples := zeroSamples(1000)
	if err := c.Embed(samples, "test", "qwerty1"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	before := append([]int16(nil), samples...)

	if err := c.Clear(samples, "nope"); err != ErrIncorrectPassword {
		t.Fatalf("Clear with wrong password = %v, want ErrIncorrectPassword", err)
	}
	for i := range samples {
		if samples[i] != before[i] {
			t.Fatalf("Clear mutated sample %d on failed password check", i)
		}
	}

	got, err := c.Extract(samples, "qwerty1")
	if err != nil || got != "test" {
		t.Fatalf("Extract after failed Clear = (%q, %v), want (\"test\", nil)", got, err)
	}
}

// The PRNG index stream is deterministic and non-repeating for a fixed
// (password, N, occupancy), and two fresh streams over the same seed
// agree draw for draw.
func TestIndexStreamDeterministicAndNonRepeating(t *testing.T) {
	const n, occupancy = 200, 70
	first := NewIndexStream(n, "_", occupancy)
	second := NewIndexStream(n, "_", occupancy)

	seen := make(map[int]bool)
	for i := 0; i < 10; i++ {
		a, okA := first.Next()
		b, okB := second.Next()
		if !okA || !okB {
			t.Fatalf("stream exhausted early at i=%d", i)
		}
		if a != b {
			t.Fatalf("two fresh streams for the same seed diverged at i=%d: %d != %d", i, a, b)
		}
		if seen[a] {
			t.Fatalf("index %d repeated within a single stream", a)
		}
		seen[a] = true
	}
}

func TestIndexStreamCloneReplaysFromInitialState(t *testing.T) {
	const n, occupancy = 200, 70
	original := NewIndexStream(n, "_", occupancy)
	var drawn []int
	for i := 0; i < 5; i++ {
		idx, ok := original.Next()
		if !ok {
			t.Fatalf("stream exhausted early at i=%d", i)
		}
		drawn = append(drawn, idx)
	}

	clone := original.Clone()
	for i, want := range drawn {
		got, ok := clone.Next()
		if !ok {
			t.Fatalf("clone exhausted early at i=%d", i)
		}
		if got != want {
			t.Fatalf("clone draw %d = %d, want %d", i, got, want)
		}
	}
}

func TestIndexStreamRespectsOccupancyCap(t *testing.T) {
	const n, occupancy = 200, 70
	s := NewIndexStream(n, "_", occupancy)
	want := n * occupancy / 100
	count := 0
	for {
		if _, ok := s.Next(); !ok {
			break
		}
		count++
	}
	if count != want {
		t.Fatalf("yielded %d indices, want %d", count, want)
	}
}

// A non-16-bit WAV is rejected before any mutation is attempted.
func TestDecodeWAVRejectsNon16Bit(t *testing.T) {
	raw := buildTestWAV(t, AudioSpec{NumChannels: 1, SampleRate: 44100, BitsPerSample: 8}, []byte{1, 2, 3, 4})
	_, _, err := DecodeWAV(raw)
	serr, ok := err.(*Error)
	if !ok || serr.Kind != KindInvalidFile {
		t.Fatalf("DecodeWAV err = %v, want InvalidFile", err)
	}
	if serr.Detail != "Only 16-bit WAV file supported" {
		t.Fatalf("DecodeWAV detail = %q, want the exact client-visible string", serr.Detail)
	}
}

func TestWAVRoundTripPreservesSpecAndSamples(t *testing.T) {
	spec := AudioSpec{NumChannels: 2, SampleRate: 48000, BitsPerSample: 16}
	samples := []int16{1, -1, 1000, -1000, 0, 32767, -32768}

	encoded, err := EncodeWAV(spec, samples)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	decodedSamples, decodedSpec, err := DecodeWAV(encoded)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if decodedSpec != spec {
		t.Fatalf("spec mismatch: got %+v, want %+v", decodedSpec, spec)
	}
	if len(decodedSamples) != len(samples) {
		t.Fatalf("sample count mismatch: got %d, want %d", len(decodedSamples), len(samples))
	}
	for i := range samples {
		if decodedSamples[i] != samples[i] {
			t.Fatalf("sample %d mismatch: got %d, want %d", i, decodedSamples[i], samples[i])
		}
	}
}

func TestHideExtractClearBytes(t *testing.T) {
	c := mustCodec(t, 2, 70, "STEG")
	spec := AudioSpec{NumChannels: 1, SampleRate: 44100, BitsPerSample: 16}
	wavIn, err := EncodeWAV(spec, zeroSamples(5000))
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}

	hidden, err := c.HideBytes(wavIn, "secret payload", "hunter2")
	if err != nil {
		t.Fatalf("HideBytes: %v", err)
	}

	got, err := c.ExtractBytes(hidden, "hunter2")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "secret payload" {
		t.Fatalf("ExtractBytes = %q, want %q", got, "secret payload")
	}

	cleared, err := c.ClearBytes(hidden, "hunter2")
	if err != nil {
		t.Fatalf("ClearBytes: %v", err)
	}
	if _, err := c.ExtractBytes(cleared, "hunter2"); err != ErrIncorrectPassword {
		t.Fatalf("ExtractBytes after Clear = %v, want ErrIncorrectPassword", err)
	}
}

// Capacity boundary: exactly at capacity, hide succeeds; one byte over,
// hide fails with NotEnoughSamples(required) where required > N and
// the buffer is left untouched.
func TestCapacityBoundary(t *testing.T) {
	const n, depth, occupancy = 100, 1, 70
	headerLen := len("STEG")

	usable := UsableBits(n, depth, occupancy)
	maxMessageLen := usable/8 - headerLen - 1
	if maxMessageLen < 0 {
		t.Fatalf("test setup: no room for a message at all")
	}

	c := mustCodec(t, depth, occupancy, "STEG")
	fits := make([]byte, maxMessageLen)
	for i := range fits {
		fits[i] = 'a'
	}
	samples := zeroSamples(n)
	if err := c.Embed(samples, string(fits), "pw"); err != nil {
		t.Fatalf("Embed at capacity boundary: %v", err)
	}

	tooBig := make([]byte, maxMessageLen+1)
	for i := range tooBig {
		tooBig[i] = 'a'
	}
	before := zeroSamples(n)
	err := c.Embed(before, string(tooBig), "pw")
	serr, ok := err.(*Error)
	if !ok || serr.Kind != KindNotEnoughSamples {
		t.Fatalf("Embed over capacity err = %v, want NotEnoughSamples", err)
	}
	if serr.Required <= n {
		t.Fatalf("required = %d, want > %d", serr.Required, n)
	}
	for i, s := range before {
		if s != 0 {
			t.Fatalf("sample %d mutated despite capacity failure", i)
		}
	}
}

func TestGetCodecUnknownFormat(t *testing.T) {
	_, err := GetCodec("mp3", 1, Params{Header: "STEG", Occupancy: 70})
	serr, ok := err.(*Error)
	if !ok || serr.Kind != KindUnsupportedFormat {
		t.Fatalf("GetCodec(\"mp3\") err = %v, want UnsupportedFormat", err)
	}
}

func TestNewCodecValidatesDepth(t *testing.T) {
	if _, err := NewCodec(0, Params{Header: "STEG", Occupancy: 70}); err == nil {
		t.Fatal("NewCodec(depth=0) should fail")
	}
	if _, err := NewCodec(17, Params{Header: "STEG", Occupancy: 70}); err == nil {
		t.Fatal("NewCodec(depth=17) should fail")
	}
}

func TestCalculatePSNRPerfectMatchIsInfinite(t *testing.T) {
	s := constSamples(100, 42)
	got := CalculatePSNR(s, append([]int16(nil), s...))
	if !isInf(got) {
		t.Fatalf("CalculatePSNR identical buffers = %v, want +Inf", got)
	}
}

func isInf(f float64) bool { return f > 1e300 }

// buildTestWAV is a minimal local WAV encoder independent of EncodeWAV,
// used only to exercise DecodeWAV's bits-per-sample rejection path
// against a format EncodeWAV itself refuses to produce.
func buildTestWAV(t *testing.T, spec AudioSpec, rawSampleBytes []byte) []byte {
	t.Helper()
	buf := make([]byte, 0, 44+len(rawSampleBytes))
	buf = append(buf, "RIFF"...)
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = append(buf, 16, 0, 0, 0)
	buf = append(buf, 1, 0) // PCM
	buf = append(buf, byte(spec.NumChannels), byte(spec.NumChannels>>8))
	buf = append(buf, byte(spec.SampleRate), byte(spec.SampleRate>>8), byte(spec.SampleRate>>16), byte(spec.SampleRate>>24))
	blockAlign := spec.NumChannels * (spec.BitsPerSample / 8)
	byteRate := spec.SampleRate * uint32(blockAlign)
	buf = append(buf, byte(byteRate), byte(byteRate>>8), byte(byteRate>>16), byte(byteRate>>24))
	buf = append(buf, byte(blockAlign), byte(blockAlign>>8))
	buf = append(buf, byte(spec.BitsPerSample), byte(spec.BitsPerSample>>8))
	buf = append(buf, "data"...)
	size := uint32(len(rawSampleBytes))
	buf = append(buf, byte(size), byte(size>>8), byte(size>>16), byte(size>>24))
	buf = append(buf, rawSampleBytes...)
	return buf
}
