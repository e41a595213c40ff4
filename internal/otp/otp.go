package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Generator produces one-time verification codes with a fixed lifetime.
type Generator struct {
	ttl time.Duration
}

// NewGenerator returns a Generator whose codes expire after ttl.
func NewGenerator(ttl time.Duration) *Generator {
	return &Generator{ttl: ttl}
}

// Generate returns a zero-padded 6-digit code and its expiry instant.
func (g *Generator) Generate() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", time.Time{}, err
	}
	return fmt.Sprintf("%06d", n.Int64()), time.Now().Add(g.ttl), nil
}
