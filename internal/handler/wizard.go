package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/setuprelay/setuprelay/internal/handler/dto"
	"github.com/setuprelay/setuprelay/internal/wizard"
)

// Submitter processes one wizard submission.
// *wizard.Service implements it; tests substitute a fake.
type Submitter interface {
	Submit(ctx context.Context, sub wizard.Submission) error
}

// WizardHandler handles wizard form submissions.
type WizardHandler struct {
	svc    Submitter
	logger *slog.Logger
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(svc Submitter, logger *slog.Logger) *WizardHandler {
	return &WizardHandler{
		svc:    svc,
		logger: logger,
	}
}

// Submit handles POST /api/submit-wizard.
//
// Responses follow the documented contract: 200 {success,message} on
// delivery, 400 on missing required fields, 500 with a generic message on
// transport failure. Internal error detail is logged, never returned.
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Chunked bodies only hit the MaxBytesReader cap here, mid-decode.
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Payload too large", "Request body exceeds the allowed size")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", "Request body must be valid JSON")
		return
	}

	err := h.svc.Submit(r.Context(), req.ToSubmission())
	if err != nil {
		if errors.Is(err, wizard.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Missing required fields", "Email and company name are required")
			return
		}

		h.logger.Error("wizard submission failed",
			slog.String("error", err.Error()),
			slog.String("company_name", req.CompanyName),
		)
		writeError(w, http.StatusInternalServerError, "Failed to process submission",
			"An error occurred while processing your request. Please try again or contact support.")
		return
	}

	writeJSON(w, http.StatusOK, dto.SubmitResponse{
		Success: true,
		Message: "Setup information submitted successfully",
	})
}
