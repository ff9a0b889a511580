package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ProfileValidator,DomainChecker,EventSink,Completer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"regguard/internal/allowlist"
	"regguard/internal/audit"
	"regguard/internal/platform/metrics"
	"regguard/internal/registration/models"
	"regguard/internal/registration/service/mocks"
)

// =============================================================================
// Registration Validator Test Suite
// =============================================================================
// The validator owns the ordering of checks and the mapping from causes to
// error codes. Collaborators are mocked so every call into them is asserted.

type ValidatorSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	profiles  *mocks.MockProfileValidator
	domains   *mocks.MockDomainChecker
	events    *mocks.MockEventSink
	completer *mocks.MockCompleter
	metrics   *metrics.Metrics
	service   *Service
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.profiles = mocks.NewMockProfileValidator(s.ctrl)
	s.domains = mocks.NewMockDomainChecker(s.ctrl)
	s.events = mocks.NewMockEventSink(s.ctrl)
	s.completer = mocks.NewMockCompleter(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())

	svc, err := New(s.profiles, s.domains,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithEventSink(s.events),
		WithCompleter(s.completer),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.service = svc
}

func (s *ValidatorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func attempt(email, username string) models.RegistrationAttempt {
	return models.NewRegistrationAttempt(map[string]string{
		models.FieldEmail:    email,
		models.FieldUsername: username,
	})
}

func profileError(causes ...models.Cause) *models.ProfileError {
	perr := models.NewProfileError()
	for _, c := range causes {
		perr.Add(models.FieldEmail, string(c)+"Message", c)
	}
	return perr
}

// captureEvent expects exactly one emitted event and stores it in dst.
func (s *ValidatorSuite) captureEvent(dst *audit.Event) {
	s.events.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e audit.Event) error {
			*dst = e
			return nil
		}).Times(1)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *ValidatorSuite) TestNew() {
	s.Run("nil profile validator returns error", func() {
		_, err := New(nil, s.domains)
		s.ErrorContains(err, "profile validator is required")
	})

	s.Run("nil domain checker returns error", func() {
		_, err := New(s.profiles, nil)
		s.ErrorContains(err, "domain checker is required")
	})

	s.Run("options are applied", func() {
		svc, err := New(s.profiles, s.domains, WithEmailAsUsername(true), WithEventSink(s.events))
		s.Require().NoError(err)
		s.True(svc.emailAsUsername)
		s.Equal(s.events, svc.events)
	})
}

// =============================================================================
// Profile Validation Failures (fail-fast, allowlist never consulted)
// =============================================================================

func (s *ValidatorSuite) TestProfileFailureCodes() {
	tests := []struct {
		name   string
		causes []models.Cause
		want   models.ErrorCode
	}{
		{"email exists", []models.Cause{models.CauseEmailExists}, models.CodeEmailInUse},
		{"username exists", []models.Cause{models.CauseUsernameExists}, models.CodeUsernameInUse},
		{"email outranks username", []models.Cause{models.CauseUsernameExists, models.CauseEmailExists}, models.CodeEmailInUse},
		{"invalid email", []models.Cause{models.CauseInvalidEmail}, models.CodeInvalidRegistration},
		{"other structural cause", []models.Cause{models.CauseOther}, models.CodeInvalidRegistration},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			perr := profileError(tt.causes...)
			s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).Return(models.Profile{}, perr)
			var event audit.Event
			s.captureEvent(&event)

			out := s.service.Validate(context.Background(), attempt("taken@allowed.com", "taken"))

			s.False(out.OK())
			s.Equal(tt.want, out.Code)
			s.Equal(perr.Messages, out.Messages, "all profile messages are kept in order")
			s.Equal(string(tt.want), event.Error)
			s.Equal(audit.EventRegisterError, event.Type)
		})
	}
}

func (s *ValidatorSuite) TestProfileFailureKeepsEmailDetail() {
	s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).
		Return(models.Profile{}, profileError(models.CauseInvalidEmail))
	var event audit.Event
	s.captureEvent(&event)

	s.service.Validate(context.Background(), attempt("not-an-email", "bob"))

	s.Equal("not-an-email", event.Details[audit.DetailEmail])
	s.Equal("form", event.Details[audit.DetailRegisterMethod])
	s.Equal("bob", event.Details[audit.DetailUsername])
}

func (s *ValidatorSuite) TestProfileValidatorBreakdown() {
	s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).
		Return(models.Profile{}, errors.New("directory unreachable"))
	var event audit.Event
	s.captureEvent(&event)

	out := s.service.Validate(context.Background(), attempt("user@allowed.com", "user"))

	s.Equal(models.GlobalFailure(models.CodeInternalServerError), out)
	s.Equal(string(models.CodeInternalServerError), event.Error)
}

// =============================================================================
// Domain Allowlist Verdicts
// =============================================================================

func (s *ValidatorSuite) TestDomainVerdicts() {
	tests := []struct {
		name   string
		email  string
		result allowlist.Result
		want   models.Outcome
	}{
		{
			name:   "allowed domain succeeds",
			email:  "user@allowed.com",
			result: allowlist.Result{Verdict: allowlist.Allowed},
			want:   models.Success(),
		},
		{
			name:   "blocked domain is rejected",
			email:  "user@blocked.com",
			result: allowlist.Result{Verdict: allowlist.NotAllowed},
			want:   models.GlobalFailure(models.CodeEmailDomainNotAllowed),
		},
		{
			name:   "service error fails closed",
			email:  "user@allowed.com",
			result: allowlist.Result{Verdict: allowlist.ServiceError, Detail: "unexpected status 503"},
			want:   models.GlobalFailure(models.CodeInternalServerError),
		},
		{
			name:   "unconfigured endpoint fails closed",
			email:  "user@allowed.com",
			result: allowlist.Result{Verdict: allowlist.ServiceError, Detail: "endpoint not configured"},
			want:   models.GlobalFailure(models.CodeInternalServerError),
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).
				Return(models.Profile{Email: tt.email, Username: "user"}, nil)
			s.domains.EXPECT().CheckDomain(gomock.Any(), tt.email).Return(tt.result).Times(1)
			var event audit.Event
			s.captureEvent(&event)

			out := s.service.Validate(context.Background(), attempt(tt.email, "user"))

			s.Equal(tt.want, out)
			s.Equal(string(tt.want.Code), event.Error)
			for _, m := range out.Messages {
				s.NotContains(m.Key, "503", "service details never reach the user")
			}
		})
	}
}

func (s *ValidatorSuite) TestChecksTheValidatedEmail() {
	s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).
		Return(models.Profile{Email: "user@allowed.com", Username: "user"}, nil)
	s.domains.EXPECT().CheckDomain(gomock.Any(), "user@allowed.com").
		Return(allowlist.Result{Verdict: allowlist.Allowed}).Times(1)
	s.events.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	out := s.service.Validate(context.Background(), attempt("  User@Allowed.com ", "user"))

	s.True(out.OK())
}

// =============================================================================
// Observational Side Effects
// =============================================================================

func (s *ValidatorSuite) TestEventSinkFailureDoesNotChangeOutcome() {
	s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).
		Return(models.Profile{Email: "user@allowed.com"}, nil)
	s.domains.EXPECT().CheckDomain(gomock.Any(), "user@allowed.com").
		Return(allowlist.Result{Verdict: allowlist.Allowed})
	s.events.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

	out := s.service.Validate(context.Background(), attempt("user@allowed.com", "user"))

	s.True(out.OK())
}

func (s *ValidatorSuite) TestEmailAsUsernameDetail() {
	svc, err := New(s.profiles, s.domains, WithEventSink(s.events), WithEmailAsUsername(true))
	s.Require().NoError(err)
	s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).
		Return(models.Profile{Email: "user@allowed.com", Username: "user@allowed.com"}, nil)
	s.domains.EXPECT().CheckDomain(gomock.Any(), "user@allowed.com").
		Return(allowlist.Result{Verdict: allowlist.Allowed})
	var event audit.Event
	s.captureEvent(&event)

	svc.Validate(context.Background(), attempt("user@allowed.com", ""))

	s.Equal("user@allowed.com", event.Details[audit.DetailUsername])
	s.Empty(event.Error)
	s.Equal(audit.EventRegister, event.Type)
}

func (s *ValidatorSuite) TestOutcomeMetrics() {
	s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).
		Return(models.Profile{Email: "user@blocked.com"}, nil)
	s.domains.EXPECT().CheckDomain(gomock.Any(), "user@blocked.com").
		Return(allowlist.Result{Verdict: allowlist.NotAllowed})
	s.events.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	s.service.Validate(context.Background(), attempt("user@blocked.com", "user"))

	s.Equal(1.0, testutil.ToFloat64(
		s.metrics.RegistrationOutcomes.WithLabelValues(string(models.CodeEmailDomainNotAllowed))))
}

func (s *ValidatorSuite) TestConcurrentAttemptsAreIndependent() {
	s.profiles.EXPECT().ValidateProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a models.RegistrationAttempt) (models.Profile, error) {
			return models.Profile{Email: a.Email}, nil
		}).AnyTimes()
	s.domains.EXPECT().CheckDomain(gomock.Any(), "user@allowed.com").
		Return(allowlist.Result{Verdict: allowlist.Allowed}).AnyTimes()
	s.domains.EXPECT().CheckDomain(gomock.Any(), "user@blocked.com").
		Return(allowlist.Result{Verdict: allowlist.NotAllowed}).AnyTimes()
	s.events.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var wg sync.WaitGroup
	results := make([]models.Outcome, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := "user@allowed.com"
			if i%2 == 1 {
				email = "user@blocked.com"
			}
			results[i] = s.service.Validate(context.Background(), attempt(email, "user"))
		}(i)
	}
	wg.Wait()

	for i, out := range results {
		if i%2 == 1 {
			s.Equal(models.CodeEmailDomainNotAllowed, out.Code)
		} else {
			s.True(out.OK())
		}
	}
}

// =============================================================================
// Completion Hook
// =============================================================================

func (s *ValidatorSuite) TestComplete() {
	s.Run("delegates to the host completer", func() {
		a := attempt("user@allowed.com", "user")
		s.completer.EXPECT().Complete(gomock.Any(), a).Return(nil).Times(1)
		s.NoError(s.service.Complete(context.Background(), a))
	})

	s.Run("nil completer is a no-op", func() {
		svc, err := New(s.profiles, s.domains)
		s.Require().NoError(err)
		s.NoError(svc.Complete(context.Background(), attempt("user@allowed.com", "user")))
	})
}
