package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/pkg/validation"
)

type Config struct {
	Development bool
	// API configuration
	APIPort   int
	JWTSecret string
	// Postgres configuration
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string
	// Blockchain configuration
	TokenContractAddress string
	EthereumRPCURL       string
	// Redis balance cache configuration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	BalanceCacheTTL time.Duration
	// Drop discovery configuration
	MaxDistanceMiles float64
	// Claim configuration
	ClaimPolicy models.ClaimPolicy
	// Balance warmer configuration
	BalanceWarmInterval time.Duration

	// SMTP configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSender   string

	// Telegram configuration
	TelegramBotToken    string
	TelegramAdminChatID string
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Development:          getEnvAsBool("DEVELOPMENT", false),
		APIPort:              getEnvAsInt("API_PORT", 6941),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		PostgresUser:         getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:     getEnv("POSTGRES_PASSWORD", "password"),
		PostgresHost:         getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:         getEnvAsInt("POSTGRES_PORT", 5432),
		PostgresDB:           getEnv("POSTGRES_DB", "ghostdrop"),
		TokenContractAddress: getEnv("TOKEN_CONTRACT_ADDRESS", ""),
		EthereumRPCURL:       getEnv("ETHEREUM_RPC_URL", "http://localhost:8545"),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		BalanceCacheTTL:      getEnvAsDuration("BALANCE_CACHE_TTL", 2*time.Minute),
		MaxDistanceMiles:     getEnvAsFloat("MAX_DISTANCE_MILES", 100),
		BalanceWarmInterval:  getEnvAsDuration("BALANCE_WARM_INTERVAL", 5*time.Minute),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.example.com"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPSender:   getEnv("SMTP_SENDER", ""),

		TelegramBotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminChatID: getEnv("TELEGRAM_ADMIN_CHAT_ID", ""),
	}

	policy, err := models.ParseClaimPolicy(getEnv("CLAIM_POLICY", string(models.PolicyPerUser)))
	if err != nil {
		return nil, fmt.Errorf("invalid CLAIM_POLICY: %w", err)
	}
	cfg.ClaimPolicy = policy

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are properly set
func (c *Config) Validate() error {
	if c.TokenContractAddress == "" {
		return fmt.Errorf("TOKEN_CONTRACT_ADDRESS is required")
	}

	// Validate token contract address format
	if err := validation.ValidateAddress(c.TokenContractAddress); err != nil {
		return fmt.Errorf("invalid TOKEN_CONTRACT_ADDRESS format: %w", err)
	}

	if c.EthereumRPCURL == "" {
		return fmt.Errorf("ETHEREUM_RPC_URL is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.PostgresDB == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}

	if c.MaxDistanceMiles <= 0 {
		return fmt.Errorf("MAX_DISTANCE_MILES must be positive")
	}

	return nil
}

// Helper functions to read environment variables
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsFloat(name string, defaultValue float64) float64 {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsDuration(name string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
