package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"coinhouse/domain/entities"
	"coinhouse/domain/utils"
)

// Config holds all engine configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Protocol addresses
	OwnerAddress   entities.Account
	PartnerAddress entities.Account

	// Game configuration
	MinStakeNative  int64
	GameMaxDuration time.Duration

	// Token configuration
	SupportedTokens []entities.Asset
	StakeToken      entities.Asset

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns a snapshot of the global configuration. Runtime mutations go
// through AddSupportedToken and SetPartner; handing out copies keeps those
// writes from racing in-flight readers.
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		once.Do(func() {
			var err error
			instance, err = load()
			if err != nil {
				if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
					instance = NewTestConfig()
				} else {
					panic(fmt.Sprintf("failed to load config: %v", err))
				}
			}
		})
	}

	snapshot := *instance
	return &snapshot
}

// PartnerConfigured reports whether a partner fee payee exists.
func (c *Config) PartnerConfigured() bool {
	return !c.PartnerAddress.IsZero()
}

// IsSupportedToken reports whether the token is allow-listed for games.
func (c *Config) IsSupportedToken(asset entities.Asset) bool {
	for _, t := range c.SupportedTokens {
		if t == asset {
			return true
		}
	}
	return false
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		OwnerAddress:   entities.Account(os.Getenv("OWNER_ADDRESS")),
		PartnerAddress: entities.Account(os.Getenv("PARTNER_ADDRESS")),

		// 0.01 native units in wei, overridable below
		MinStakeNative:  10_000_000_000_000_000,
		GameMaxDuration: 24 * time.Hour,

		StakeToken: entities.Asset(os.Getenv("STAKE_TOKEN")),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Whole-coin notation, e.g. "0.01".
	if minStake := os.Getenv("MIN_STAKE"); minStake != "" {
		parsed, err := utils.NativeUnits(minStake)
		if err != nil {
			return nil, fmt.Errorf("invalid MIN_STAKE: %w", err)
		}
		config.MinStakeNative = parsed
	}

	if maxDuration := os.Getenv("GAME_MAX_DURATION_SECONDS"); maxDuration != "" {
		seconds, err := strconv.ParseInt(maxDuration, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid GAME_MAX_DURATION_SECONDS: %w", err)
		}
		config.GameMaxDuration = time.Duration(seconds) * time.Second
	}

	if tokens := os.Getenv("SUPPORTED_TOKENS"); tokens != "" {
		for _, token := range strings.Split(tokens, ",") {
			token = strings.TrimSpace(token)
			if token != "" {
				config.SupportedTokens = append(config.SupportedTokens, entities.Asset(token))
			}
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.OwnerAddress.IsZero() {
			return nil, fmt.Errorf("OWNER_ADDRESS is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// AddSupportedToken allow-lists a token at runtime. No-op if already listed.
func AddSupportedToken(asset entities.Asset) {
	Get() // force the initial load
	mu.Lock()
	defer mu.Unlock()
	for _, t := range instance.SupportedTokens {
		if t == asset {
			return
		}
	}
	// Copy-on-write: snapshots handed out earlier keep the old slice.
	tokens := make([]entities.Asset, 0, len(instance.SupportedTokens)+1)
	tokens = append(tokens, instance.SupportedTokens...)
	instance.SupportedTokens = append(tokens, asset)
}

// SetPartner updates the partner fee payee at runtime.
func SetPartner(account entities.Account) {
	Get() // force the initial load
	mu.Lock()
	defer mu.Unlock()
	instance.PartnerAddress = account
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		OwnerAddress:    "0xowner",
		PartnerAddress:  "0xpartner",
		MinStakeNative:  10_000_000_000_000_000,
		GameMaxDuration: 24 * time.Hour,
		SupportedTokens: []entities.Asset{"0xtoken"},
		StakeToken:      "0xstake",
	}
}
