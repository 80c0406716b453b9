package random

import (
	"crypto/rand"
	"math/big"
)

// Random abstracts randomness for token suffix generation so tests can
// queue deterministic values.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String draws length characters from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom draws from crypto/rand. Session tokens only need
// uniqueness, but the cost of the stronger source is negligible.
type CryptoRandom struct{}

// New returns a Random backed by crypto/rand.
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a random int in [0, n).
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		return 0
	}
	return int(result.Int64())
}

// String draws length characters from alphabet.
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(result)
}
