package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all environment-sourced settings for the bot.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// WhatsApp Cloud API
	VerifyToken   string `env:"VERIFY_TOKEN"`
	AccessToken   string `env:"ACCESS_TOKEN"`
	PhoneNumberID string `env:"PHONE_NUMBER_ID"`
	AppSecret     string `env:"APP_SECRET"`
	GraphAPIURL   string `env:"GRAPH_API_URL" envDefault:"https://graph.facebook.com/v18.0"`

	// IKAS order API
	IkasClientID     string `env:"IKAS_CLIENT_ID"`
	IkasClientSecret string `env:"IKAS_CLIENT_SECRET"`
	IkasTokenURL     string `env:"IKAS_TOKEN_URL" envDefault:"https://adminapi.myikas.com/oauth/token"`
	IkasAPIURL       string `env:"IKAS_API_URL" envDefault:"https://api.myikas.com/api/v1/admin/graphql"`

	// Sessions
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	UseMemoryStore bool          `env:"USE_MEMORY_STORE" envDefault:"false"`

	// Returns
	ReturnsEnabled bool `env:"RETURNS_ENABLED" envDefault:"false"`

	// Human agent escalation (Twilio)
	TwilioAccountSID  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFrom        string `env:"TWILIO_WHATSAPP_FROM"`
	SupportAgentPhone string `env:"SUPPORT_AGENT_PHONE"`
}

// Load reads the .env file when present and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config from environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the webhook cannot run without.
func (c Config) Validate() error {
	if c.VerifyToken == "" {
		return fmt.Errorf("VERIFY_TOKEN is required")
	}
	if c.AccessToken == "" || c.PhoneNumberID == "" {
		return fmt.Errorf("ACCESS_TOKEN and PHONE_NUMBER_ID are required")
	}
	return nil
}

// IsDevelopment reports whether the bot runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
