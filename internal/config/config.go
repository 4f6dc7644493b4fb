package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database Database `json:"database" mapstructure:"database"`
	Data     Data     `json:"data" mapstructure:"data"`
	Generate Generate `json:"generate" mapstructure:"generate"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	Name     string `json:"name" mapstructure:"name"`
}

type Data struct {
	Dir       string `json:"dir" mapstructure:"dir"`
	BatchSize int    `json:"batch_size" mapstructure:"batch_size"`
}

type Generate struct {
	Customers              int     `json:"customers" mapstructure:"customers"`
	AccountsPerCustomer    float64 `json:"accounts_per_customer" mapstructure:"accounts_per_customer"`
	TxnsPerAccountPerMonth float64 `json:"txns_per_account_per_month" mapstructure:"txns_per_account_per_month"`
	Months                 int     `json:"months" mapstructure:"months"`
}

// Environment variables read in addition to the optional config file.
var envBindings = map[string]string{
	"database.provider":                   "DB_PROVIDER",
	"database.user":                       "DB_USER",
	"database.password":                   "DB_PASSWORD",
	"database.host":                       "DB_HOST",
	"database.port":                       "DB_PORT",
	"database.name":                       "DB_NAME",
	"data.dir":                            "DATA_DIR",
	"data.batch_size":                     "BATCH_SIZE",
	"generate.customers":                  "NUM_CUSTOMERS",
	"generate.accounts_per_customer":      "NUM_ACCOUNTS_PER_CUSTOMER",
	"generate.txns_per_account_per_month": "NUM_TRANSACTIONS_PER_ACCOUNT_PER_MONTH",
	"generate.months":                     "MONTHS_OF_DATA",
}

func Load() (*Config, error) {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data/raw"
	}
	if cfg.Data.BatchSize == 0 {
		cfg.Data.BatchSize = 5000
	}
	if cfg.Generate.Customers == 0 {
		cfg.Generate.Customers = 500
	}
	if cfg.Generate.AccountsPerCustomer == 0 {
		cfg.Generate.AccountsPerCustomer = 1.5
	}
	if cfg.Generate.TxnsPerAccountPerMonth == 0 {
		cfg.Generate.TxnsPerAccountPerMonth = 10
	}
	if cfg.Generate.Months == 0 {
		cfg.Generate.Months = 12
	}

	return &cfg, nil
}

// IsSQLite reports whether the configured provider is a local sqlite file.
// SQLite needs no credentials, so the required-variable check skips them.
func (c *Config) IsSQLite() bool {
	return c.Database.Provider == "sqlite" || c.Database.Provider == "sqlite3"
}

// ValidateDatabase checks the connection settings before any I/O happens.
// Every missing required variable is reported in a single error.
func (c *Config) ValidateDatabase() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	var missing []string
	if !c.IsSQLite() {
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Database.Password == "" {
			missing = append(missing, "DB_PASSWORD")
		}
	}
	if c.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("DB_PORT must be a valid TCP port (1-65535), got: %d", c.Database.Port)
	}

	return nil
}

// ValidateGenerate checks the dataset generation parameters.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Customers < 1 {
		return fmt.Errorf("NUM_CUSTOMERS must be at least 1, got: %d", c.Generate.Customers)
	}
	if c.Generate.AccountsPerCustomer <= 0 {
		return fmt.Errorf("NUM_ACCOUNTS_PER_CUSTOMER must be positive, got: %v", c.Generate.AccountsPerCustomer)
	}
	if c.Generate.TxnsPerAccountPerMonth <= 0 {
		return fmt.Errorf("NUM_TRANSACTIONS_PER_ACCOUNT_PER_MONTH must be positive, got: %v", c.Generate.TxnsPerAccountPerMonth)
	}
	if c.Generate.Months < 1 {
		return fmt.Errorf("MONTHS_OF_DATA must be at least 1, got: %d", c.Generate.Months)
	}
	if c.Data.BatchSize < 1 {
		return fmt.Errorf("BATCH_SIZE must be at least 1, got: %d", c.Data.BatchSize)
	}
	return nil
}
