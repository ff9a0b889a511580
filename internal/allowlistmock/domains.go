// Package allowlistmock is a stand-in for the external email domain allowlist
// service, used for local runs and end-to-end checks of the registration gate.
package allowlistmock

import (
	"strings"

	"regguard/pkg/email"
)

// DefaultDomains are allowed when no list is configured.
var DefaultDomains = []string{"productdock.com", "codecentric.com"}

// DomainSet is an immutable set of allowed domains.
type DomainSet struct {
	domains map[string]struct{}
}

// NewDomainSet normalizes and de-duplicates domains. Blank entries are ignored.
func NewDomainSet(domains []string) DomainSet {
	set := DomainSet{domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			set.domains[d] = struct{}{}
		}
	}
	return set
}

// Allows reports whether the text after the last '@' of address is allowed.
func (s DomainSet) Allows(address string) bool {
	_, ok := s.domains[email.Domain(address)]
	return ok
}

// Len returns the number of allowed domains.
func (s DomainSet) Len() int {
	return len(s.domains)
}
