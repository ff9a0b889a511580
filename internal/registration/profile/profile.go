// Package profile is the default structural profile validator: field format
// rules via go-playground/validator and uniqueness lookups against a user
// directory.
package profile

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"regguard/internal/registration/models"
	dErrors "regguard/pkg/domain-errors"
	"regguard/pkg/email"
)

const (
	emailRules    = "required,email,max=254"
	usernameRules = "required,min=3,max=64,username"
	nameRules     = "omitempty,max=255"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9._-]+$`)

// UserDirectory answers uniqueness questions about already registered users.
type UserDirectory interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// Validator implements the registration service's ProfileValidator.
type Validator struct {
	directory       UserDirectory
	validate        *validator.Validate
	emailAsUsername bool
}

type Option func(*Validator)

// WithEmailAsUsername registers users under their email; the username field is ignored.
func WithEmailAsUsername(enabled bool) Option {
	return func(v *Validator) {
		v.emailAsUsername = enabled
	}
}

func New(directory UserDirectory, opts ...Option) (*Validator, error) {
	if directory == nil {
		return nil, errors.New("user directory is required")
	}

	validate := validator.New()
	if err := validate.RegisterValidation("username", validateUsername); err != nil {
		return nil, err
	}

	v := &Validator{directory: directory, validate: validate}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// ValidateProfile builds the profile from the submitted fields. Invalid
// profiles are reported as *models.ProfileError; directory failures are
// returned as coded domain errors.
func (v *Validator) ValidateProfile(ctx context.Context, attempt models.RegistrationAttempt) (models.Profile, error) {
	profile := models.Profile{
		Email:     email.Normalize(attempt.Email),
		Username:  strings.ToLower(strings.TrimSpace(attempt.Username)),
		FirstName: strings.TrimSpace(attempt.Field(models.FieldFirstName)),
		LastName:  strings.TrimSpace(attempt.Field(models.FieldLastName)),
	}
	if v.emailAsUsername {
		profile.Username = profile.Email
	}

	perr := models.NewProfileError()

	emailOK := v.checkEmail(profile.Email, perr)
	usernameOK := v.emailAsUsername || v.checkUsername(profile.Username, perr)
	v.checkName(models.FieldFirstName, models.MessageInvalidFirstName, profile.FirstName, perr)
	v.checkName(models.FieldLastName, models.MessageInvalidLastName, profile.LastName, perr)

	if emailOK {
		exists, err := v.directory.EmailExists(ctx, profile.Email)
		if err != nil {
			return models.Profile{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "user directory unavailable")
		}
		if exists {
			perr.Add(models.FieldEmail, models.MessageEmailExists, models.CauseEmailExists)
		}
	}

	if usernameOK && !v.emailAsUsername {
		exists, err := v.directory.UsernameExists(ctx, profile.Username)
		if err != nil {
			return models.Profile{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "user directory unavailable")
		}
		if exists {
			perr.Add(models.FieldUsername, models.MessageUsernameExists, models.CauseUsernameExists)
		}
	}

	if !perr.Empty() {
		return profile, perr
	}
	return profile, nil
}

func (v *Validator) checkEmail(value string, perr *models.ProfileError) bool {
	tag := failedTag(v.validate.Var(value, emailRules))
	switch tag {
	case "":
		return true
	case "required":
		perr.Add(models.FieldEmail, models.MessageMissingEmail, models.CauseOther)
	default:
		perr.Add(models.FieldEmail, models.MessageInvalidEmail, models.CauseInvalidEmail)
	}
	return false
}

func (v *Validator) checkUsername(value string, perr *models.ProfileError) bool {
	tag := failedTag(v.validate.Var(value, usernameRules))
	switch tag {
	case "":
		return true
	case "required":
		perr.Add(models.FieldUsername, models.MessageMissingUsername, models.CauseOther)
	default:
		perr.Add(models.FieldUsername, models.MessageInvalidUsername, models.CauseOther)
	}
	return false
}

func (v *Validator) checkName(field, key, value string, perr *models.ProfileError) {
	if failedTag(v.validate.Var(value, nameRules)) != "" {
		perr.Add(field, key, models.CauseOther)
	}
}

// failedTag returns the first failing rule, or "" when err is nil.
func failedTag(err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return "invalid"
}
