package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (SOLEMATE_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"API server listen address"`
	ImageBaseURL string `default:"" usage:"Base URL for relative product image paths" flag:"image-base-url"`
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
	Session      SessionConfig
	Checkout     CheckoutConfig
}

// RateLimitConfig controls the per-session sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers. Credentials
// default to on since the cart session rides on a cookie.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"true" usage:"Allow credentials (cookies)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// SessionConfig controls the in-memory cart session store.
type SessionConfig struct {
	TTL           time.Duration `default:"24h" usage:"Idle time before a cart session is evicted" flag:"session-ttl"`
	SweepInterval time.Duration `default:"10m" usage:"How often stale sessions are swept" flag:"session-sweep"`
	MaxSessions   int           `default:"100000" usage:"Session count above which readiness fails" flag:"session-max"`
}

// CheckoutConfig controls the simulated payment and notification timing.
type CheckoutConfig struct {
	ProcessingDelay     time.Duration `default:"4s"    usage:"Simulated payment processing time" flag:"checkout-delay"`
	CustomerNotifyDelay time.Duration `default:"1s"    usage:"Delay before the customer confirmation message" flag:"notify-customer-delay"`
	CEONotifyDelay      time.Duration `default:"2500ms" usage:"Delay before the founder alert message" flag:"notify-ceo-delay"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SOLEMATE",
		Files:     []string{"config.yaml", "/etc/solemate/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) like PORT to the SOLEMATE_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
