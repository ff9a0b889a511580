package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"regguard/internal/platform/middleware"
	"regguard/internal/registration/models"
	"regguard/internal/registration/service"
	dErrors "regguard/pkg/domain-errors"
	"regguard/pkg/platform/httputil"
	"regguard/pkg/platform/middleware/requesttime"
	"regguard/pkg/requestcontext"
)

const maxFormBytes = 64 << 10

// Service is the registration pipeline seen from HTTP.
type Service interface {
	Validate(ctx context.Context, attempt models.RegistrationAttempt) models.Outcome
	Complete(ctx context.Context, attempt models.RegistrationAttempt) error
}

// Handler exposes the registration form action.
type Handler struct {
	svc            Service
	logger         *slog.Logger
	requestTimeout time.Duration
}

// New creates a registration Handler.
func New(svc Service, logger *slog.Logger, requestTimeout time.Duration) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{svc: svc, logger: logger, requestTimeout: requestTimeout}
}

// Register registers the registration routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	regRouter := chi.NewRouter()
	regRouter.Use(middleware.Recovery(h.logger))
	regRouter.Use(middleware.RequestID)
	regRouter.Use(requesttime.Middleware)
	regRouter.Use(middleware.ClientMetadata)
	regRouter.Use(middleware.Logger(h.logger))
	if h.requestTimeout > 0 {
		regRouter.Use(middleware.Timeout(h.requestTimeout))
	}
	regRouter.Post("/register", h.handleRegister)
	regRouter.Get("/provider", h.handleProvider)

	r.Mount("/", regRouter)
}

type successResponse struct {
	Status string `json:"status"`
}

type failureResponse struct {
	Error    models.ErrorCode      `json:"error"`
	Messages []models.FieldMessage `json:"messages"`
}

type providerResponse struct {
	ID          string `json:"id"`
	DisplayType string `json:"display_type"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	fields, err := decodeFields(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid registration request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	attempt := models.NewRegistrationAttempt(fields)
	outcome := h.svc.Validate(ctx, attempt)
	if !outcome.OK() {
		writeOutcome(w, outcome)
		return
	}

	if err := h.svc.Complete(ctx, attempt); err != nil {
		h.logger.ErrorContext(ctx, "registration completion failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeOutcome(w, models.GlobalFailure(models.CodeInternalServerError))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, successResponse{Status: "success"})
}

func (h *Handler) handleProvider(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, providerResponse{
		ID:          service.ProviderID,
		DisplayType: service.DisplayType,
	})
}

// decodeFields reads the submitted form as url-encoded or JSON string fields.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		fields := map[string]string{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
		}
		return fields, nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid form body")
		}
		fields := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
		return fields, nil
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unsupported content type")
	}
}

// writeOutcome renders a rejected outcome. Only the fail-closed internal code is a 500.
func writeOutcome(w http.ResponseWriter, o models.Outcome) {
	status := http.StatusBadRequest
	if o.Code == models.CodeInternalServerError {
		status = http.StatusInternalServerError
	}
	httputil.WriteJSON(w, status, failureResponse{Error: o.Code, Messages: o.Messages})
}
