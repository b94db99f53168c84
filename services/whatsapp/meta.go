package whatsapp

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"yumres/models"
)

// MetaProvider speaks the WhatsApp Cloud API: nested JSON webhooks in, JSON
// message sends out.
type MetaProvider struct {
	baseURL       string
	accessToken   string
	phoneNumberID string
	appSecret     string
}

func NewMetaProvider(baseURL, accessToken, phoneNumberID, appSecret string) *MetaProvider {
	return &MetaProvider{
		baseURL:       baseURL,
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		appSecret:     appSecret,
	}
}

func (p *MetaProvider) Name() string { return ProviderMeta }

type metaWebhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Metadata struct {
					DisplayPhoneNumber string `json:"display_phone_number"`
					PhoneNumberID      string `json:"phone_number_id"`
				} `json:"metadata"`
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
					WaID string `json:"wa_id"`
				} `json:"contacts"`
				Messages []struct {
					From      string `json:"from"`
					ID        string `json:"id"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ValidateWebhook checks the X-Hub-Signature-256 header against an HMAC-SHA256
// of the raw body keyed with the app secret. Validation is skipped when no
// app secret is configured.
func (p *MetaProvider) ValidateWebhook(c *gin.Context) error {
	if p.appSecret == "" {
		return nil
	}
	signature := c.GetHeader("X-Hub-Signature-256")
	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("missing X-Hub-Signature-256 header")
	}

	body, err := rawBody(c)
	if err != nil {
		return err
	}

	mac := hmac.New(sha256.New, []byte(p.appSecret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("meta signature mismatch")
	}
	return nil
}

// ParseWebhookPayload normalizes a Cloud API message webhook. Status-only
// notifications (no messages entry) return an error so the caller can ack and
// skip them.
func (p *MetaProvider) ParseWebhookPayload(c *gin.Context) (*models.InboundMessage, error) {
	body, err := rawBody(c)
	if err != nil {
		return nil, err
	}

	var payload metaWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if len(payload.Entry) == 0 || len(payload.Entry[0].Changes) == 0 {
		return nil, fmt.Errorf("webhook payload carries no changes")
	}

	value := payload.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		return nil, fmt.Errorf("webhook payload carries no messages")
	}
	message := value.Messages[0]

	profileName := ""
	if len(value.Contacts) > 0 {
		profileName = value.Contacts[0].Profile.Name
	}

	timestamp := time.Now()
	if secs, err := strconv.ParseInt(message.Timestamp, 10, 64); err == nil {
		timestamp = time.Unix(secs, 0)
	}

	return &models.InboundMessage{
		From:        message.From,
		To:          value.Metadata.DisplayPhoneNumber,
		Body:        message.Text.Body,
		MessageID:   message.ID,
		ProfileName: profileName,
		Timestamp:   timestamp,
	}, nil
}

// SendText delivers a plain text message.
func (p *MetaProvider) SendText(ctx context.Context, to, body string) error {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": body},
	}
	return p.post(ctx, payload)
}

// SendTemplate delivers an approved message template.
func (p *MetaProvider) SendTemplate(ctx context.Context, to, templateName string, components []models.TemplateComponent) error {
	template := map[string]interface{}{
		"name":     templateName,
		"language": map[string]string{"code": "en"},
	}
	if len(components) > 0 {
		template["components"] = components
	}
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "template",
		"template":          template,
	}
	return p.post(ctx, payload)
}

func (p *MetaProvider) post(ctx context.Context, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/messages", p.baseURL, p.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("meta request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("meta rejected message: status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

// rawBody reads the request body and restores it so later readers still see
// it.
func rawBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
