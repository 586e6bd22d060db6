package billing

import "time"

// StripeConfig holds the payment provider credentials.
type StripeConfig struct {
	SecretKey        string        `env:"STRIPE_SECRET_KEY"`
	WebhookSecret    string        `env:"STRIPE_WEBHOOK_SECRET"`
	WebhookTolerance time.Duration `env:"STRIPE_WEBHOOK_TOLERANCE" envDefault:"5m"`
}

// EventLogConfig controls how long processed event ids are remembered.
type EventLogConfig struct {
	TTL       time.Duration `env:"WEBHOOK_EVENT_TTL" envDefault:"72h"`
	KeyPrefix string        `env:"WEBHOOK_EVENT_KEY_PREFIX" envDefault:"stripe:event:"`
}
