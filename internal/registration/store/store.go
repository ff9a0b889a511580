// Package store provides user directory backends answering the uniqueness
// questions asked during profile validation.
package store

import "strings"

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
