// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	// Server
	HTTPAddr string

	// Storage
	StorageBackend string // "postgres" or "memory"
	DatabaseURL    string
	RedisAddr      string
	RedisPass      string

	Loyalty LoyaltyConfig
}

// LoyaltyConfig holds the business knobs of the loyalty program. Values
// come from the environment and can be overridden by a YAML file named
// in LOYALTY_CONFIG_FILE.
type LoyaltyConfig struct {
	WelcomePoints           int64   `yaml:"welcome_points"`
	WelcomePromotionEnabled bool    `yaml:"welcome_promotion_enabled"`
	WelcomePromotionDays    int     `yaml:"welcome_promotion_days"`
	PointsPerCurrencyUnit   float64 `yaml:"points_per_currency_unit"`

	// Tier thresholds
	VIPSpendThreshold      float64 `yaml:"vip_spend_threshold"`
	FrequentVisitThreshold int64   `yaml:"frequent_visit_threshold"`
	RegularVisitThreshold  int64   `yaml:"regular_visit_threshold"`

	// Tier-triggered promotions
	VIPDiscountPercent   float64 `yaml:"vip_discount_percent"`
	VIPDiscountDays      int     `yaml:"vip_discount_days"`
	VIPFreeDrinkDays     int     `yaml:"vip_free_drink_days"`
	VIPFreeDrinkMaxUses  int     `yaml:"vip_free_drink_max_uses"`
	FrequentBonusPoints  int64   `yaml:"frequent_bonus_points"`
	FrequentBonusDays    int     `yaml:"frequent_bonus_days"`

	// Whether withdrawal transactions debit the monetary balance. The
	// legacy system recorded withdrawals without touching the balance,
	// so this defaults off.
	WithdrawalsDebitBalance bool `yaml:"withdrawals_debit_balance"`
}

// Load loads environment variables into AppConfig.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8000"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "postgres")),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPass:      getEnv("REDIS_PASS", ""),

		Loyalty: LoyaltyConfig{
			WelcomePoints:           getEnvInt64("WELCOME_POINTS", 100),
			WelcomePromotionEnabled: getEnvBool("WELCOME_PROMOTION_ENABLED", true),
			WelcomePromotionDays:    getEnvInt("WELCOME_PROMOTION_DAYS", 30),
			PointsPerCurrencyUnit:   getEnvFloat("POINTS_PER_CURRENCY_UNIT", 0.1),

			VIPSpendThreshold:      getEnvFloat("VIP_SPEND_THRESHOLD", 50000.0),
			FrequentVisitThreshold: getEnvInt64("FREQUENT_VISIT_THRESHOLD", 20),
			RegularVisitThreshold:  getEnvInt64("REGULAR_VISIT_THRESHOLD", 5),

			VIPDiscountPercent:  getEnvFloat("VIP_DISCOUNT_PERCENT", 20.0),
			VIPDiscountDays:     getEnvInt("VIP_DISCOUNT_DAYS", 90),
			VIPFreeDrinkDays:    getEnvInt("VIP_FREE_DRINK_DAYS", 30),
			VIPFreeDrinkMaxUses: getEnvInt("VIP_FREE_DRINK_MAX_USES", 5),
			FrequentBonusPoints: getEnvInt64("FREQUENT_BONUS_POINTS", 500),
			FrequentBonusDays:   getEnvInt("FREQUENT_BONUS_DAYS", 60),

			WithdrawalsDebitBalance: getEnvBool("WITHDRAWALS_DEBIT_BALANCE", false),
		},
	}

	if path := os.Getenv("LOYALTY_CONFIG_FILE"); path != "" {
		if err := cfg.Loyalty.loadFile(path); err != nil {
			return cfg, fmt.Errorf("failed to load loyalty config file: %w", err)
		}
	}

	return cfg, nil
}

func (l *LoyaltyConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, l)
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.ToLower(v) == "true"
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
