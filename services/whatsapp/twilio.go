package whatsapp

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"yumres/models"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioProvider speaks Twilio's WhatsApp API: forms-encoded webhooks in,
// forms-encoded message sends out.
type TwilioProvider struct {
	accountSID string
	authToken  string
	fromNumber string
}

func NewTwilioProvider(accountSID, authToken, fromNumber string) *TwilioProvider {
	return &TwilioProvider{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
	}
}

func (p *TwilioProvider) Name() string { return ProviderTwilio }

// ValidateWebhook checks the X-Twilio-Signature header: base64 HMAC-SHA1 of
// the request URL plus the sorted form parameters, keyed with the auth token.
func (p *TwilioProvider) ValidateWebhook(c *gin.Context) error {
	if p.authToken == "" {
		return fmt.Errorf("twilio auth token not configured")
	}
	signature := c.GetHeader("X-Twilio-Signature")
	if signature == "" {
		return fmt.Errorf("missing X-Twilio-Signature header")
	}

	if err := c.Request.ParseForm(); err != nil {
		return fmt.Errorf("invalid form payload: %w", err)
	}

	requestURL := "https://" + c.Request.Host + c.Request.URL.RequestURI()
	keys := make([]string, 0, len(c.Request.PostForm))
	for k := range c.Request.PostForm {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(requestURL)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(c.Request.PostForm.Get(k))
	}

	mac := hmac.New(sha1.New, []byte(p.authToken))
	mac.Write([]byte(b.String()))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("twilio signature mismatch")
	}
	return nil
}

// ParseWebhookPayload normalizes a Twilio message webhook.
func (p *TwilioProvider) ParseWebhookPayload(c *gin.Context) (*models.InboundMessage, error) {
	body := c.PostForm("Body")
	messageSid := c.PostForm("MessageSid")
	from := c.PostForm("From")
	if from == "" {
		from = c.PostForm("WaId")
	}
	if from == "" || messageSid == "" {
		return nil, fmt.Errorf("payload is missing From/WaId or MessageSid")
	}

	return &models.InboundMessage{
		From:        stripWhatsAppPrefix(from),
		To:          stripWhatsAppPrefix(c.PostForm("To")),
		Body:        body,
		MessageID:   messageSid,
		ProfileName: c.PostForm("ProfileName"),
		Timestamp:   time.Now(),
	}, nil
}

// SendText delivers a plain text message.
func (p *TwilioProvider) SendText(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("From", "whatsapp:"+p.fromNumber)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)
	return p.post(ctx, form)
}

// SendTemplate delivers an approved content template. templateName is the
// Twilio content SID and components become the content variables.
func (p *TwilioProvider) SendTemplate(ctx context.Context, to, templateName string, components []models.TemplateComponent) error {
	form := url.Values{}
	form.Set("From", "whatsapp:"+p.fromNumber)
	form.Set("To", "whatsapp:"+to)
	form.Set("ContentSid", templateName)
	if len(components) > 0 {
		vars, err := json.Marshal(components)
		if err != nil {
			return fmt.Errorf("failed to encode template components: %w", err)
		}
		form.Set("ContentVariables", string(vars))
	}
	return p.post(ctx, form)
}

func (p *TwilioProvider) post(ctx context.Context, form url.Values) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", twilioAPIBase, p.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("twilio rejected message: status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

func stripWhatsAppPrefix(number string) string {
	return strings.TrimPrefix(number, "whatsapp:")
}
