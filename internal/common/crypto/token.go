package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
)

type TokenGenerator interface {
	NewToken() (string, error)
}

// RandomTokenGenerator issues opaque hex tokens from crypto/rand. With the
// default 16 bytes a token is 32 hex characters and 128 bits of entropy.
type RandomTokenGenerator struct {
	size int
}

func NewRandomTokenGenerator() *RandomTokenGenerator {
	return &RandomTokenGenerator{size: constants.TokenBytes}
}

func (g *RandomTokenGenerator) NewToken() (string, error) {
	b := make([]byte, g.size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
