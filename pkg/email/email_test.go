package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomain(t *testing.T) {
	cases := map[string]string{
		"user@allowed.com":         "allowed.com",
		"  Mixed@ProductDock.COM ": "productdock.com",
		"odd@name@codecentric.com": "codecentric.com",
		"no-at-sign":               "no-at-sign",
		"trailing@":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Domain(in), "Domain(%q)", in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "user@example.com", Normalize("  USER@Example.com\t"))
}
