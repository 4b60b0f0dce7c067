package stego

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"golang.org/x/crypto/chacha20"
)

// IndexStream yields a non-repeating pseudorandom sequence of sample
// indices in [0, sampleLen), seeded deterministically from a password:
// the password digest keys a ChaCha keystream whose uniform draws are
// rejection-sampled against a "used" set until the occupancy cap is
// reached.
//
// The sequence is stable across runs and platforms for a fixed
// (password, sampleLen, occupancy) triple, but is specific to this
// codebase; buffers encoded elsewhere with a different sampler are not
// decodable here.
type IndexStream struct {
	key       [32]byte
	sampleLen int
	maxCount  int

	cipher  cipher20
	used    map[int]struct{}
	yielded int
}

// cipher20 is the minimal surface this package needs from chacha20.Cipher.
type cipher20 interface {
	XORKeyStream(dst, src []byte)
}

// NewIndexStream constructs a stream at its initial state.
func NewIndexStream(sampleLen int, password string, occupancy int) *IndexStream {
	key := deriveKey(password)
	maxCount := 0
	if sampleLen > 0 {
		maxCount = (sampleLen * occupancy) / 100
	}
	return newIndexStreamFromKey(key, sampleLen, maxCount)
}

func newIndexStreamFromKey(key [32]byte, sampleLen int, maxCount int) *IndexStream {
	var nonce [chacha20.NonceSize]byte // zero nonce: the key already encodes the full seed
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Only fails on bad key/nonce length, which deriveKey never produces.
		panic(err)
	}
	return &IndexStream{
		key:       key,
		sampleLen: sampleLen,
		maxCount:  maxCount,
		cipher:    c,
		used:      make(map[int]struct{}, maxCount),
	}
}

// deriveKey stretches a 64-bit FNV-1a digest of the password into a
// 32-byte ChaCha20 key via SplitMix64. FNV is stable across platforms,
// which is all the seeding needs; it is not a secrecy boundary.
func deriveKey(password string) [32]byte {
	h := fnv.New64a()
	_, _ = h.Write([]byte(password))
	seed := h.Sum64()

	var key [32]byte
	state := seed
	for i := 0; i < 4; i++ {
		state, _ = splitMix64Next(state)
		binary.LittleEndian.PutUint64(key[i*8:(i+1)*8], state)
	}
	return key
}

func splitMix64Next(state uint64) (uint64, uint64) {
	state += 0x9E3779B97F4A7C15
	z := state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return state, z
}

func (s *IndexStream) nextUint64() uint64 {
	var buf [8]byte
	s.cipher.XORKeyStream(buf[:], buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// Next returns the next distinct index, or ok=false once the cap is reached.
func (s *IndexStream) Next() (int, bool) {
	if s.sampleLen == 0 || s.yielded >= s.maxCount {
		return 0, false
	}
	n := uint64(s.sampleLen)
	limit := (math.MaxUint64 / n) * n // rejection band avoiding modulo bias
	for {
		raw := s.nextUint64()
		if raw >= limit {
			continue
		}
		idx := int(raw % n)
		if _, taken := s.used[idx]; taken {
			continue
		}
		s.used[idx] = struct{}{}
		s.yielded++
		return idx, true
	}
}

// Clone returns a fresh stream at its initial state, derived from the
// same seed. Clear uses this to run one pass that validates the header
// and a second, independent pass that mutates samples in the same
// order.
func (s *IndexStream) Clone() *IndexStream {
	return newIndexStreamFromKey(s.key, s.sampleLen, s.maxCount)
}
