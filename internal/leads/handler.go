package leads

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/spurtek/spurtek-leads/internal/http/middleware"
	"github.com/spurtek/spurtek-leads/internal/validation"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

const maxBodyBytes = 64 << 10

const (
	msgInvalidInput  = "Invalid input data"
	msgInternalError = "Internal server error"
	msgBodyTooLarge  = "Request body too large"
)

// SubmitResponse is the 201 body of every intake endpoint.
type SubmitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of every 4xx/5xx answer.
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Details []validation.FieldIssue `json:"details,omitempty"`
}

// Handler serves the public intake endpoints. Rate limiting runs in front of
// it as router middleware.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// CreateQuote handles POST /api/leads/quote.
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var in validation.QuoteInput
	if !h.decode(w, r, "quote", &in) {
		return
	}
	h.writeReceipt(w, h.svc.SubmitLead(r.Context(), NewQuoteLead(in)))
}

// CreateDemo handles POST /api/leads/demo.
func (h *Handler) CreateDemo(w http.ResponseWriter, r *http.Request) {
	var in validation.DemoInput
	if !h.decode(w, r, "demo", &in) {
		return
	}
	h.writeReceipt(w, h.svc.SubmitLead(r.Context(), NewDemoLead(in)))
}

// CreateContact handles POST /api/leads/contact.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in validation.ContactInput
	if !h.decode(w, r, "contact", &in) {
		return
	}
	h.writeReceipt(w, h.svc.SubmitLead(r.Context(), NewContactLead(in)))
}

// TrackDownload handles POST /api/downloads.
func (h *Handler) TrackDownload(w http.ResponseWriter, r *http.Request) {
	var in validation.DownloadInput
	if !h.decode(w, r, "download", &in) {
		return
	}
	dl := &Download{
		ResourceSlug: in.ResourceSlug,
		ResourceType: string(in.ResourceType),
		Email:        in.EmailAddress(),
		UserAgent:    r.UserAgent(),
	}
	if client := middleware.ClientIdentifier(r); client != middleware.UnknownClient {
		dl.IPAddress = client
	}
	h.svc.TrackDownload(r.Context(), dl)
	writeJSON(w, http.StatusCreated, SubmitResponse{Success: true})
}

// Subscribe handles POST /api/newsletter.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in validation.NewsletterInput
	if !h.decode(w, r, "newsletter", &in) {
		return
	}
	h.writeReceipt(w, h.svc.Subscribe(r.Context(), &Subscription{Email: in.Email, Source: in.Source}))
}

// decode reads and validates the body into dest. It writes the error
// response itself and reports whether the caller should continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, kind string, dest validation.Input) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("request body too large", "kind", kind, "limit", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: msgBodyTooLarge})
			return false
		}
		h.logger.Error("failed to read request body", "error", err, "kind", kind)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
		return false
	}

	if err := validation.Decode(body, dest); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			h.svc.metrics.ObserveSubmission(kind, "invalid")
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidInput, Details: verr.Issues})
			return false
		}
		h.logger.Error("failed to decode request", "error", err, "kind", kind)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
		return false
	}
	return true
}

func (h *Handler) writeReceipt(w http.ResponseWriter, receipt Receipt) {
	writeJSON(w, http.StatusCreated, SubmitResponse{
		Success: true,
		ID:      receipt.ID,
		Message: receipt.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
