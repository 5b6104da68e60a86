package v1

import (
	"errors"
	"net/http"
	"strings"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/internal/domain"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	validate  *validator.Validate
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, validate *validator.Validate) {
	handler := &ContactHandler{
		contactUC: contactUC,
		validate:  validate,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a project inquiry through the contact form. This is a public endpoint.
// @Tags         contact
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        name         formData  string  true   "Sender name"
// @Param        email        formData  string  true   "Sender email"
// @Param        projectType  formData  string  true   "Project type"  Enums(web-app, mobile-app, api-backend, ui-ux-design, consulting, other)
// @Param        budget       formData  string  false  "Budget range"
// @Param        message      formData  string  true   "Inquiry message"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid submission", validation.FormatValidationErrors(err))
		return
	}

	// Length and enum bounds apply to the normalized (trimmed) values, so
	// validation runs after Normalize rather than relying on binding alone.
	req.Normalize()
	if err := h.validate.Struct(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid submission", validation.FormatValidationErrors(err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req, clientID(c)); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.Error(appErr)
		} else {
			c.Error(apperror.Internal(err))
		}
		return
	}

	response.Success(c, http.StatusOK, "Your message has been sent successfully!", nil)
}

// clientID derives the rate-limit identity: first forwarded-for hop, then the
// real-IP header, then the literal "unknown". Clients lacking both headers
// share a single bucket — accepted for a single-instance deployment behind a
// proxy that always sets them.
func clientID(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if rip := c.GetHeader("X-Real-IP"); rip != "" {
		return rip
	}
	return "unknown"
}
