package domain

import (
	"context"
	"strings"
	"time"
)

// ContactRequest represents a project inquiry submitted through the marketing
// site contact form. Binding tags enforce presence at the framework boundary;
// validate tags carry the length and enum bounds checked after normalization.
type ContactRequest struct {
	Name        string `form:"name" json:"name" binding:"required" validate:"min=2,max=100"`
	Email       string `form:"email" json:"email" binding:"required" validate:"email,max=254"`
	ProjectType string `form:"projectType" json:"projectType" binding:"required" validate:"oneof=web-app mobile-app api-backend ui-ux-design consulting other"`
	Budget      string `form:"budget" json:"budget"`
	Message     string `form:"message" json:"message" binding:"required" validate:"min=10,max=5000"`
	// Honeypot field, invisible to humans. Bots fill every field; a non-empty
	// value marks the submission for silent suppression.
	Website string `form:"website" json:"website"`
}

// ProjectTypeLabels maps form values to the human-readable labels used in the
// notification email subject and body.
var ProjectTypeLabels = map[string]string{
	"web-app":      "Web Application",
	"mobile-app":   "Mobile App",
	"api-backend":  "API / Backend",
	"ui-ux-design": "UI/UX Design",
	"consulting":   "Consulting",
	"other":        "Other",
}

// BudgetLabels maps budget range values to display labels.
var BudgetLabels = map[string]string{
	"under-10k": "Under $10,000",
	"10k-25k":   "$10,000 - $25,000",
	"25k-50k":   "$25,000 - $50,000",
	"50k-100k":  "$50,000 - $100,000",
	"over-100k": "Over $100,000",
	"not-sure":  "Not sure yet",
}

// Normalize trims and canonicalizes the submitted fields in place. Unknown
// budget values are coerced to absent rather than rejected, so a stale form
// option never fails the whole submission. Must run before validation so the
// length bounds apply to the trimmed values.
func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Message = strings.TrimSpace(r.Message)
	if _, known := BudgetLabels[r.Budget]; !known {
		r.Budget = ""
	}
}

// ProjectTypeLabel returns the display label for the submitted project type.
func (r *ContactRequest) ProjectTypeLabel() string {
	if label, ok := ProjectTypeLabels[r.ProjectType]; ok {
		return label
	}
	return r.ProjectType
}

// BudgetLabel returns the display label for the submitted budget range, or
// "Not specified" when the field is absent.
func (r *ContactRequest) BudgetLabel() string {
	if label, ok := BudgetLabels[r.Budget]; ok {
		return label
	}
	return "Not specified"
}

// RateLimitExceededError carries window details so the delivery layer can set
// Retry-After and X-RateLimit headers on the 429 response.
type RateLimitExceededError struct {
	Limit   int
	ResetAt time.Time
}

func (e *RateLimitExceededError) Error() string {
	return "rate limit exceeded"
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage runs a validated submission through the spam and
	// rate-limit gates and dispatches the notification email. clientIP is the
	// caller-derived network identity used for rate limiting and abuse triage.
	SendContactMessage(ctx context.Context, req *ContactRequest, clientIP string) error
}
