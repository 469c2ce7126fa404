package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. Everything is resolved once at
// startup; nothing here is re-read while the service is running.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Admin   AdminConfig
	Relay   RelayConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	AppID        string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret          string
	SessionTokenTTL time.Duration
}

// AdminConfig drives the permission gate. PermanentAdminUID is the one
// identity that is always treated as admin; Override marks every
// non-anonymous session as admin (local development only). InitialAuthToken
// is an optional pre-provisioned sign-in token honoured by the token
// sign-in flow.
type AdminConfig struct {
	PermanentAdminUID string
	Override          bool
	InitialAuthToken  string
}

// RelayConfig configures the contact-form relay (one SMS + one email per
// submission). The relay stays disabled while the Twilio or SMTP side is
// left unconfigured.
type RelayConfig struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TwilioToNumber   string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	NotifyEmail      string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("APP_ID", "editfolio")
	viper.SetDefault("MONGODB_DATABASE", "editfolio")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("SESSION_TOKEN_TTL", 10080)
	viper.SetDefault("PERMANENT_ADMIN_UID", "pwOSgNHvG9Yl8NBM28A66O7ONTP2")
	viper.SetDefault("SMTP_PORT", 587)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			AppID:        viper.GetString("APP_ID"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			SessionTokenTTL: time.Duration(viper.GetInt("SESSION_TOKEN_TTL")) * time.Minute,
		},
		Admin: AdminConfig{
			PermanentAdminUID: viper.GetString("PERMANENT_ADMIN_UID"),
			Override:          viper.GetBool("ADMIN_OVERRIDE"),
			InitialAuthToken:  os.Getenv("INITIAL_AUTH_TOKEN"),
		},
		Relay: RelayConfig{
			TwilioAccountSID: viper.GetString("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			TwilioFromNumber: viper.GetString("TWILIO_FROM_NUMBER"),
			TwilioToNumber:   viper.GetString("TWILIO_TO_NUMBER"),
			SMTPHost:         viper.GetString("SMTP_HOST"),
			SMTPPort:         viper.GetInt("SMTP_PORT"),
			SMTPUsername:     viper.GetString("SMTP_USERNAME"),
			SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
			NotifyEmail:      viper.GetString("NOTIFY_EMAIL"),
		},
	}

	// Basic validation
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; set a secure value in production")
	}
	if cfg.Admin.Override && cfg.Server.Environment != "development" {
		log.Println("WARNING: ADMIN_OVERRIDE is enabled outside development")
	}

	return cfg, nil
}
