package allowlistmock

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"regguard/internal/platform/middleware"
	"regguard/pkg/platform/httputil"
	"regguard/pkg/requestcontext"
)

// Messages returned alongside the verdict.
const (
	MessageAllowed    = "Email domain is allowed"
	MessageNotAllowed = "Email domain is not allowed"
)

type checkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type checkResponse struct {
	DomainAllowed bool   `json:"domainAllowed"`
	Message       string `json:"message"`
}

// Handler serves POST /emails.
type Handler struct {
	domains  DomainSet
	logger   *slog.Logger
	validate *validator.Validate
}

// New creates a mock allowlist Handler.
func New(domains DomainSet, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		domains:  domains,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register registers the mock routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	mockRouter := chi.NewRouter()
	mockRouter.Use(middleware.Recovery(h.logger))
	mockRouter.Use(middleware.RequestID)
	mockRouter.Use(middleware.Logger(h.logger))
	mockRouter.Post("/emails", h.handleCheck)

	r.Mount("/", mockRouter)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.reject(w, r, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.reject(w, r, "email must be a valid email address", err)
		return
	}

	resp := checkResponse{DomainAllowed: false, Message: MessageNotAllowed}
	if h.domains.Allows(req.Email) {
		resp = checkResponse{DomainAllowed: true, Message: MessageAllowed}
	}

	h.logger.InfoContext(ctx, "email domain checked",
		"domain_allowed", resp.DomainAllowed,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// reject answers 422 for bodies that do not carry a valid email.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, description string, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		err = verrs[0]
	}
	h.logger.WarnContext(r.Context(), "rejected allowlist request",
		"error", err.Error(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
	httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.ErrorResponse{
		Error:            "validation_error",
		ErrorDescription: description,
	})
}
