package usecase

import (
	"context"
	"net/http"

	"go-agency-backend/internal/domain"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/email"
	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/ratelimit"
	"go-agency-backend/pkg/sanitize"
	"go-agency-backend/pkg/spam"
)

// RateLimiter is the admission-control dependency of the contact pipeline.
// Satisfied by *ratelimit.Limiter.
type RateLimiter interface {
	Admit(ctx context.Context, key string) ratelimit.Decision
}

// Mailer dispatches the inquiry notification. Satisfied by *email.Service.
type Mailer interface {
	SendContactEmail(ctx context.Context, data email.ContactEmailData) error
}

type contactUsecase struct {
	mailer  Mailer
	limiter RateLimiter
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(mailer Mailer, limiter RateLimiter) domain.ContactUsecase {
	return &contactUsecase{
		mailer:  mailer,
		limiter: limiter,
	}
}

// SendContactMessage runs the submission pipeline: honeypot, rate limit, spam
// heuristics, sanitization, dispatch — in that order. The honeypot gate comes
// before rate limiting so an obvious bot never consumes a slot. Suppressed
// submissions (honeypot, spam) return nil: the caller reports the same success
// shape as a genuine send, so a prober cannot tell "blocked" from "delivered".
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, clientIP string) error {
	if req.Website != "" {
		logger.Log.Info("honeypot triggered, suppressing submission", "client_ip", clientIP)
		return nil
	}

	d := uc.limiter.Admit(ctx, clientIP)
	if !d.Allowed {
		return apperror.New(
			http.StatusTooManyRequests,
			"Too many submissions. Please try again later.",
			&domain.RateLimitExceededError{Limit: d.Limit, ResetAt: d.ResetAt},
		)
	}

	if spam.Classify(req.Name, req.Message) {
		logger.Log.Info("spam pattern detected, suppressing submission", "client_ip", clientIP)
		return nil
	}

	data := email.ContactEmailData{
		SafeName:         sanitize.Escape(req.Name),
		SafeEmail:        sanitize.Escape(req.Email),
		SafeMessage:      sanitize.Escape(req.Message),
		ProjectTypeLabel: req.ProjectTypeLabel(),
		BudgetLabel:      req.BudgetLabel(),
		ReplyTo:          req.Email,
		ClientIP:         clientIP,
	}

	if err := uc.mailer.SendContactEmail(ctx, data); err != nil {
		// Provider detail stays in the server log; the caller only ever sees
		// the generic retry-later message.
		logger.Log.Error("contact email dispatch failed", "client_ip", clientIP, "error", err)
		return apperror.New(http.StatusInternalServerError, "Failed to send email. Please try again later.", err)
	}

	return nil
}
