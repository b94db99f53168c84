package whatsapp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func twilioFormContext(t *testing.T, form url.Values) *gin.Context {
	t.Helper()
	req := httptest.NewRequest("POST", "https://example.com/webhooks/whatsapp/rest-1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func signTwilio(authToken, requestURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(requestURL)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(form.Get(k))
	}
	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestTwilioParseWebhookPayload(t *testing.T) {
	form := url.Values{}
	form.Set("From", "whatsapp:+351910000001")
	form.Set("To", "whatsapp:+351210000000")
	form.Set("Body", "table for two please")
	form.Set("MessageSid", "SM123")
	form.Set("ProfileName", "Ana")

	provider := NewTwilioProvider("AC1", "token", "+351210000000")
	msg, err := provider.ParseWebhookPayload(twilioFormContext(t, form))
	require.NoError(t, err)

	assert.Equal(t, "+351910000001", msg.From)
	assert.Equal(t, "+351210000000", msg.To)
	assert.Equal(t, "table for two please", msg.Body)
	assert.Equal(t, "SM123", msg.MessageID)
	assert.Equal(t, "Ana", msg.ProfileName)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestTwilioParseWebhookPayloadFallsBackToWaID(t *testing.T) {
	form := url.Values{}
	form.Set("WaId", "351910000001")
	form.Set("Body", "hi")
	form.Set("MessageSid", "SM124")

	provider := NewTwilioProvider("AC1", "token", "+351210000000")
	msg, err := provider.ParseWebhookPayload(twilioFormContext(t, form))
	require.NoError(t, err)
	assert.Equal(t, "351910000001", msg.From)
}

func TestTwilioParseWebhookPayloadRejectsIncomplete(t *testing.T) {
	form := url.Values{}
	form.Set("Body", "hi")

	provider := NewTwilioProvider("AC1", "token", "+351210000000")
	_, err := provider.ParseWebhookPayload(twilioFormContext(t, form))
	assert.Error(t, err)
}

func TestTwilioValidateWebhook(t *testing.T) {
	form := url.Values{}
	form.Set("From", "whatsapp:+351910000001")
	form.Set("Body", "hello")
	form.Set("MessageSid", "SM125")

	provider := NewTwilioProvider("AC1", "secret-token", "+351210000000")

	c := twilioFormContext(t, form)
	c.Request.Header.Set("X-Twilio-Signature",
		signTwilio("secret-token", "https://example.com/webhooks/whatsapp/rest-1", form))
	assert.NoError(t, provider.ValidateWebhook(c))

	// Wrong signature is rejected.
	c = twilioFormContext(t, form)
	c.Request.Header.Set("X-Twilio-Signature", "bogus")
	assert.Error(t, provider.ValidateWebhook(c))

	// Missing header is rejected.
	c = twilioFormContext(t, form)
	assert.Error(t, provider.ValidateWebhook(c))
}

func TestStripWhatsAppPrefix(t *testing.T) {
	assert.Equal(t, "+351910000001", stripWhatsAppPrefix("whatsapp:+351910000001"))
	assert.Equal(t, "+351910000001", stripWhatsAppPrefix("+351910000001"))
}
