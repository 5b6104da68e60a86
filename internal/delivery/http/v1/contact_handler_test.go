package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-agency-backend/internal/delivery/http/middleware"
	v1 "go-agency-backend/internal/delivery/http/v1"
	"go-agency-backend/internal/domain"
	"go-agency-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, clientIP string) error {
	return m.Called(ctx, req, clientIP).Error(0)
}

func newTestRouter(uc domain.ContactUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	v1.NewContactHandler(r.Group("/v1"), uc, validator.New())
	return r
}

func validForm() url.Values {
	return url.Values{
		"name":        {"Jo Smith"},
		"email":       {"jo@example.com"},
		"projectType": {"web-app"},
		"budget":      {"10k-25k"},
		"message":     {"I need a new website for my bakery business please"},
		"website":     {""},
	}
}

func postForm(r *gin.Engine, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitContact(t *testing.T) {
	t.Run("Should accept a valid submission", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SendContactMessage", mock.Anything, mock.MatchedBy(func(req *domain.ContactRequest) bool {
			return req.Name == "Jo Smith" && req.Email == "jo@example.com" && req.Budget == "10k-25k"
		}), "203.0.113.7").Return(nil)

		w := postForm(newTestRouter(uc), validForm(), map[string]string{"X-Forwarded-For": "203.0.113.7"})

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		uc.AssertExpectations(t)
	})

	t.Run("Should normalize email and trim fields before the usecase", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SendContactMessage", mock.Anything, mock.MatchedBy(func(req *domain.ContactRequest) bool {
			return req.Name == "Jo Smith" && req.Email == "jo@example.com"
		}), mock.Anything).Return(nil)

		form := validForm()
		form.Set("name", "  Jo Smith  ")
		form.Set("email", "  JO@Example.COM ")
		w := postForm(newTestRouter(uc), form, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Should coerce unknown budget values to absent", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SendContactMessage", mock.Anything, mock.MatchedBy(func(req *domain.ContactRequest) bool {
			return req.Budget == ""
		}), mock.Anything).Return(nil)

		form := validForm()
		form.Set("budget", "not-a-real-budget")
		w := postForm(newTestRouter(uc), form, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})
}

func TestSubmitContactValidationBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		field  string
		value  string
		wantOK bool
	}{
		{"name of length 1 fails", "name", "J", false},
		{"name of length 2 succeeds", "name", "Jo", true},
		{"name of length 100 succeeds", "name", strings.Repeat("a", 100), true},
		{"name of length 101 fails", "name", strings.Repeat("a", 101), false},
		{"message of length 9 fails", "message", strings.Repeat("m", 9), false},
		{"message of length 10 succeeds", "message", strings.Repeat("m", 10), true},
		{"email of length 254 succeeds", "email", strings.Repeat("a", 242) + "@example.com", true},
		{"email of length 255 fails", "email", strings.Repeat("a", 243) + "@example.com", false},
		{"unknown project type fails", "projectType", "time-travel", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(MockContactUsecase)
			uc.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

			form := validForm()
			form.Set(tc.field, tc.value)
			w := postForm(newTestRouter(uc), form, nil)

			if tc.wantOK {
				assert.Equal(t, http.StatusOK, w.Code)
				uc.AssertNumberOfCalls(t, "SendContactMessage", 1)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				body := decodeBody(t, w)
				assert.Equal(t, "BAD_REQUEST", body["code"])
				assert.NotEmpty(t, body["error"])
				// the orchestrator is never reached on validation failure
				uc.AssertNotCalled(t, "SendContactMessage")
			}
		})
	}
}

func TestSubmitContactErrors(t *testing.T) {
	t.Run("Should surface rate limiting as TOO_MANY_REQUESTS with Retry-After", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).Return(
			apperror.New(http.StatusTooManyRequests, "Too many submissions. Please try again later.",
				&domain.RateLimitExceededError{Limit: 5, ResetAt: timeIn30Min()}))

		w := postForm(newTestRouter(uc), validForm(), nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "TOO_MANY_REQUESTS", body["code"])
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should surface dispatch failures as INTERNAL_SERVER_ERROR", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).Return(
			apperror.New(http.StatusInternalServerError, "Failed to send email. Please try again later.", nil))

		w := postForm(newTestRouter(uc), validForm(), nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
		assert.Equal(t, "Failed to send email. Please try again later.", body["message"])
	})
}

func timeIn30Min() time.Time {
	return time.Now().Add(30 * time.Minute)
}

func TestClientIdentity(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"first forwarded-for value wins", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1", "X-Real-IP": "198.51.100.2"}, "203.0.113.7"},
		{"real-ip fallback", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"unknown when both headers absent", nil, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(MockContactUsecase)
			uc.On("SendContactMessage", mock.Anything, mock.Anything, tc.want).Return(nil)

			w := postForm(newTestRouter(uc), validForm(), tc.headers)

			assert.Equal(t, http.StatusOK, w.Code)
			uc.AssertExpectations(t)
		})
	}
}
