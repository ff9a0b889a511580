package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Directory backends and clients
// return these (optionally wrapped) so services can translate them into domain
// errors or registration outcomes.
//
//   - ErrUnavailable: backing store or remote service could not be reached
//   - ErrNotConfigured: a required endpoint or connection string is empty
var (
	ErrUnavailable   = errors.New("unavailable")
	ErrNotConfigured = errors.New("not configured")
)
