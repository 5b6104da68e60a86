package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("Should fail without an API key", func(t *testing.T) {
		svc, err := NewService("", "from@example.com", "to@example.com")
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("Should construct with an API key", func(t *testing.T) {
		svc, err := NewService("re_test_key", "from@example.com", "to@example.com")
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestBuildMessage(t *testing.T) {
	data := ContactEmailData{
		SafeName:         "Jo Smith",
		SafeEmail:        "jo@example.com",
		SafeMessage:      "I need a new website for my bakery business please",
		ProjectTypeLabel: "Web Application",
		BudgetLabel:      "$10,000 - $25,000",
		ReplyTo:          "jo@example.com",
		ClientIP:         "203.0.113.7",
	}

	subject, html, err := buildMessage(data)
	require.NoError(t, err)

	t.Run("Subject names the project type and sender", func(t *testing.T) {
		assert.Contains(t, subject, "Web Application")
		assert.Contains(t, subject, "Jo Smith")
	})

	t.Run("Body embeds every field", func(t *testing.T) {
		assert.Contains(t, html, "Jo Smith")
		assert.Contains(t, html, "jo@example.com")
		assert.Contains(t, html, "I need a new website for my bakery business please")
		assert.Contains(t, html, "Web Application")
		assert.Contains(t, html, "$10,000 - $25,000")
		assert.Contains(t, html, "203.0.113.7")
	})

	t.Run("Pre-escaped fields pass through untouched", func(t *testing.T) {
		data := data
		data.SafeMessage = "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"
		_, html, err := buildMessage(data)
		require.NoError(t, err)
		assert.Contains(t, html, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;")
		assert.NotContains(t, html, "<script>")
	})

	t.Run("Absent budget renders as Not specified", func(t *testing.T) {
		data := data
		data.BudgetLabel = "Not specified"
		_, html, err := buildMessage(data)
		require.NoError(t, err)
		assert.Contains(t, html, "<strong>Budget Range:</strong> Not specified")
	})
}
