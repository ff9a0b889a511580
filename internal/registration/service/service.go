// Package service runs the registration validation pipeline: structural
// profile validation first, then the email-domain allowlist check. The
// pipeline is fail-fast and every failure resolves into a models.Outcome.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"regguard/internal/allowlist"
	"regguard/internal/audit"
	"regguard/internal/platform/metrics"
	"regguard/internal/registration/models"
	"regguard/pkg/requestcontext"
)

// Provider identity under which the host registers this form action.
const (
	ProviderID  = "custom-registration-user-creation"
	DisplayType = "Custom Registration - with email domain check"

	registerMethodForm = "form"
)

// ProfileValidator is the host's structural profile check. It returns a
// *models.ProfileError for invalid profiles; any other error means the check
// itself could not run.
type ProfileValidator interface {
	ValidateProfile(ctx context.Context, attempt models.RegistrationAttempt) (models.Profile, error)
}

type DomainChecker interface {
	CheckDomain(ctx context.Context, email string) allowlist.Result
}

type EventSink interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Completer is the host's default post-persistence behaviour.
type Completer interface {
	Complete(ctx context.Context, attempt models.RegistrationAttempt) error
}

// Service validates registration attempts. It keeps no per-attempt state, so
// one instance serves concurrent requests.
type Service struct {
	profiles        ProfileValidator
	domains         DomainChecker
	events          EventSink
	completer       Completer
	logger          *slog.Logger
	metrics         *metrics.Metrics
	emailAsUsername bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithEventSink(sink EventSink) Option {
	return func(s *Service) {
		s.events = sink
	}
}

func WithCompleter(c Completer) Option {
	return func(s *Service) {
		s.completer = c
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEmailAsUsername mirrors the realm setting that registers users under
// their email address.
func WithEmailAsUsername(enabled bool) Option {
	return func(s *Service) {
		s.emailAsUsername = enabled
	}
}

func New(profiles ProfileValidator, domains DomainChecker, opts ...Option) (*Service, error) {
	if profiles == nil {
		return nil, errors.New("profile validator is required")
	}
	if domains == nil {
		return nil, errors.New("domain checker is required")
	}

	svc := &Service{
		profiles: profiles,
		domains:  domains,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Validate runs the pipeline for one attempt and returns its terminal outcome.
func (s *Service) Validate(ctx context.Context, attempt models.RegistrationAttempt) models.Outcome {
	s.logger.InfoContext(ctx, "validating registration",
		"request_id", requestcontext.RequestID(ctx),
	)

	rec := audit.NewRecorder(ctx)
	rec.Detail(audit.DetailRegisterMethod, registerMethodForm)
	rec.Detail(audit.DetailEmail, attempt.Email)
	rec.Detail(audit.DetailUsername, attempt.Username)
	if s.emailAsUsername {
		rec.Detail(audit.DetailUsername, attempt.Email)
	}

	outcome := s.run(ctx, attempt, rec)
	s.finish(ctx, rec, outcome)
	return outcome
}

// Complete is invoked by the host after the user was persisted.
func (s *Service) Complete(ctx context.Context, attempt models.RegistrationAttempt) error {
	if s.completer == nil {
		return nil
	}
	return s.completer.Complete(ctx, attempt)
}

func (s *Service) run(ctx context.Context, attempt models.RegistrationAttempt, rec *audit.Recorder) models.Outcome {
	profile, err := s.profiles.ValidateProfile(ctx, attempt)
	if err != nil {
		return s.profileFailure(ctx, attempt, err, rec)
	}

	result := s.domains.CheckDomain(ctx, profile.Email)
	switch result.Verdict {
	case allowlist.Allowed:
		return models.Success()
	case allowlist.NotAllowed:
		s.logger.InfoContext(ctx, "email domain is not allowed",
			"request_id", requestcontext.RequestID(ctx),
		)
		return models.GlobalFailure(models.CodeEmailDomainNotAllowed)
	default:
		s.logger.WarnContext(ctx, "domain allowlist unavailable, rejecting registration",
			"detail", result.Detail,
			"request_id", requestcontext.RequestID(ctx),
		)
		return models.GlobalFailure(models.CodeInternalServerError)
	}
}

func (s *Service) profileFailure(ctx context.Context, attempt models.RegistrationAttempt, err error, rec *audit.Recorder) models.Outcome {
	var perr *models.ProfileError
	if !errors.As(err, &perr) {
		s.logger.ErrorContext(ctx, "profile validation could not run",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return models.GlobalFailure(models.CodeInternalServerError)
	}

	if perr.Has(models.CauseEmailExists, models.CauseInvalidEmail) {
		rec.Detail(audit.DetailEmail, attempt.Email)
	}

	return models.Failure(codeForCauses(perr), slices.Clone(perr.Messages))
}

// codeForCauses picks the single error code reported for a structural failure.
// An existing email outranks an existing username.
func codeForCauses(perr *models.ProfileError) models.ErrorCode {
	switch {
	case perr.Has(models.CauseEmailExists):
		return models.CodeEmailInUse
	case perr.Has(models.CauseUsernameExists):
		return models.CodeUsernameInUse
	default:
		return models.CodeInvalidRegistration
	}
}

func (s *Service) finish(ctx context.Context, rec *audit.Recorder, outcome models.Outcome) {
	if !outcome.OK() {
		rec.Error(string(outcome.Code))
	}
	if s.events != nil {
		if err := s.events.Emit(ctx, rec.Event()); err != nil {
			s.logger.WarnContext(ctx, "failed to emit registration event",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	if s.metrics != nil {
		s.metrics.IncrementOutcome(string(outcome.Code))
	}
}
