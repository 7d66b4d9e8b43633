package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MailgunConfig holds the email provider credentials.
type MailgunConfig struct {
	APIKey string
	Domain string
	From   string
	To     string
}

// Configured reports whether every credential needed to send email is set.
func (m MailgunConfig) Configured() bool {
	return m.APIKey != "" && m.Domain != "" && m.From != "" && m.To != ""
}

// PushoverConfig holds the push provider credentials. Device is optional.
type PushoverConfig struct {
	UserKey  string
	AppToken string
	Device   string
}

// Configured reports whether push notifications can be sent.
func (p PushoverConfig) Configured() bool {
	return p.UserKey != "" && p.AppToken != ""
}

// ServiceConfig is resolved once at startup and read-only afterwards.
type ServiceConfig struct {
	PublicKey      string `validate:"required,stripe_pubkey"`
	SecretKey      string `validate:"required,stripe_seckey"`
	Description    string
	Currency       string `validate:"required"`
	CORSOrigin     string `validate:"required"`
	PubkeyVariable string `validate:"required"`
	ListenAddr     string `validate:"required"`

	Mailgun  MailgunConfig
	Pushover PushoverConfig

	EmailOnSuccess bool
	EmailOnFailure bool
	PushOnSuccess  bool
	PushOnFailure  bool
}

// Load reads every recognized environment variable, applies defaults and
// returns a validated config. Callers are expected to treat an error as fatal.
func Load() (*ServiceConfig, error) {
	combined := os.Getenv("STRIPE_KEYS")
	if combined == "" {
		return nil, fmt.Errorf("STRIPE_KEYS is not set, expected \"<public>:<secret>\"")
	}
	parts := strings.Split(combined, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("STRIPE_KEYS must contain exactly two colon-separated keys, got %d parts", len(parts))
	}

	cfg := &ServiceConfig{
		PublicKey:      parts[0],
		SecretKey:      parts[1],
		Description:    os.Getenv("CHARGE_DESCRIPTION"),
		Currency:       envOr("CHARGE_CURRENCY", "usd"),
		CORSOrigin:     envOr("CORS_ORIGIN", "*"),
		PubkeyVariable: envOr("PUBKEY_VARIABLE", "stripe_pubkey"),
		ListenAddr:     envOr("LISTEN_ADDR", ":8002"),
		Mailgun: MailgunConfig{
			APIKey: os.Getenv("MAILGUN_API_KEY"),
			Domain: os.Getenv("MAILGUN_DOMAIN"),
			From:   os.Getenv("MAILGUN_FROM"),
			To:     os.Getenv("MAILGUN_TO"),
		},
		Pushover: PushoverConfig{
			UserKey:  os.Getenv("PUSHOVER_USER_KEY"),
			AppToken: os.Getenv("PUSHOVER_APP_TOKEN"),
			Device:   os.Getenv("PUSHOVER_DEVICE"),
		},
		EmailOnSuccess: envBool("EMAIL_ON_SUCCESS", false),
		EmailOnFailure: envBool("EMAIL_ON_FAILURE", true),
		PushOnSuccess:  envBool("PUSH_ON_SUCCESS", false),
		PushOnFailure:  envBool("PUSH_ON_FAILURE", true),
	}

	if err := newValidator().Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return nil, fmt.Errorf("invalid configuration: field %s failed rule %s", errs[0].Field(), errs[0].Tag())
		}
		return nil, err
	}
	return cfg, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Errors are impossible for well-formed tags, registration is static.
	_ = v.RegisterValidation("stripe_pubkey", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.HasPrefix(s, "pk_test_") || strings.HasPrefix(s, "pk_live_")
	})
	_ = v.RegisterValidation("stripe_seckey", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.HasPrefix(s, "sk_test_") || strings.HasPrefix(s, "sk_live_")
	})
	return v
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// envBool treats "1" and "true" (any case) as enabled, anything else as
// disabled, and falls back when the variable is unset.
func envBool(name string, fallback bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	return v == "1" || strings.EqualFold(v, "true")
}
