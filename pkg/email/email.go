package email

import "strings"

// Normalize trims and lowercases an address for comparisons and lookups.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Domain returns the text after the last '@', lowercased. Addresses without
// an '@' yield the whole (normalized) input, matching how the allowlist
// service splits addresses.
func Domain(address string) string {
	address = Normalize(address)
	if at := strings.LastIndexByte(address, '@'); at >= 0 {
		return address[at+1:]
	}
	return address
}
