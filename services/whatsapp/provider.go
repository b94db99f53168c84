package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yumres/config"
	"yumres/models"
)

// Vendor tags stored on the restaurant profile.
const (
	ProviderTwilio = "twilio"
	ProviderMeta   = "meta"
)

// Provider is the capability interface both WhatsApp transport vendors
// implement. Nothing outside this package branches on the vendor name.
type Provider interface {
	Name() string
	ValidateWebhook(c *gin.Context) error
	ParseWebhookPayload(c *gin.Context) (*models.InboundMessage, error)
	SendText(ctx context.Context, to, body string) error
	SendTemplate(ctx context.Context, to, templateName string, components []models.TemplateComponent) error
}

// httpClient is shared by both vendor adapters.
var httpClient = &http.Client{Timeout: 15 * time.Second}

// ProviderFor resolves the transport for a restaurant's configured vendor
// tag. An empty tag defaults to Meta.
func ProviderFor(tag string) (Provider, error) {
	switch tag {
	case ProviderTwilio:
		cfg := config.AppConfig
		return NewTwilioProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber), nil
	case ProviderMeta, "":
		cfg := config.AppConfig
		return NewMetaProvider(cfg.MetaAPIBaseURL, cfg.MetaAccessToken, cfg.MetaPhoneNumberID, cfg.MetaAppSecret), nil
	default:
		return nil, fmt.Errorf("unknown WhatsApp provider %q", tag)
	}
}
