package allowlist

// Verdict is the interpreted answer of the allowlist service.
type Verdict string

const (
	Allowed      Verdict = "allowed"
	NotAllowed   Verdict = "not_allowed"
	ServiceError Verdict = "service_error"
)

// Result is the outcome of one domain check. Detail is set only for
// ServiceError and is meant for logs, never for end users.
type Result struct {
	Verdict Verdict
	Detail  string
}

func allowed() Result    { return Result{Verdict: Allowed} }
func notAllowed() Result { return Result{Verdict: NotAllowed} }

func serviceError(detail string) Result {
	return Result{Verdict: ServiceError, Detail: detail}
}
