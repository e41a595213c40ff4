package otp

import (
	"testing"
	"time"
)

func TestGenerate_Format(t *testing.T) {
	t.Parallel()

	g := NewGenerator(10 * time.Minute)

	for i := 0; i < 100; i++ {
		code, _, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains non-digit %q", code, c)
			}
		}
	}
}

func TestGenerate_Expiry(t *testing.T) {
	t.Parallel()

	g := NewGenerator(10 * time.Minute)
	before := time.Now()

	_, expiresAt, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if expiresAt.Before(before.Add(9 * time.Minute)) {
		t.Fatalf("expiry %v too early", expiresAt)
	}
	if expiresAt.After(before.Add(11 * time.Minute)) {
		t.Fatalf("expiry %v too late", expiresAt)
	}
}
