package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config настройки приложения. Переменные окружения имеют приоритет над флагами.
type Config struct {
	RunAddress           string `env:"RUN_ADDRESS"`
	DatabaseDSN          string `env:"DATABASE_URI"`
	MigrationsDir        string `env:"MIGRATIONS_DIR"`
	StorageDriver        string `env:"STORAGE_DRIVER"`
	PaymentSystemAddress string `env:"PAYMENT_SYSTEM_ADDRESS"`

	JWTSecret         string          `env:"JWT_SECRET"`
	WebhookSecret     string          `env:"WEBHOOK_SECRET"`
	PlatformAccountID int64           `env:"PLATFORM_ACCOUNT_ID" envDefault:"1"`
	CommissionRate    decimal.Decimal `env:"COMMISSION_RATE" envDefault:"0.10"`
	Currency          string          `env:"CURRENCY" envDefault:"USD"`
	TxMaxAttempts     uint            `env:"TX_MAX_ATTEMPTS" envDefault:"3"`
	RedisAddr         string          `env:"REDIS_ADDR"`
	ReconcileWorkers  uint            `env:"RECONCILE_WORKERS" envDefault:"5"`
}

// String скрывает секреты при выводе конфигурации в журнал.
func (c Config) String() string {
	return fmt.Sprintf(
		"{RunAddress:%s StorageDriver:%s MigrationsDir:%s PaymentSystemAddress:%s PlatformAccountID:%d "+
			"CommissionRate:%s Currency:%s TxMaxAttempts:%d RedisAddr:%s ReconcileWorkers:%d}",
		c.RunAddress, c.StorageDriver, c.MigrationsDir, c.PaymentSystemAddress, c.PlatformAccountID,
		c.CommissionRate, c.Currency, c.TxMaxAttempts, c.RedisAddr, c.ReconcileWorkers,
	)
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(flag.CommandLine, &flagsConfig, os.Args[1:])

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseDSN == "" {
			return errors.New("database DSN is not set")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver `%s`", c.StorageDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("jwt secret is not set")
	}
	if c.CommissionRate.IsNegative() || c.CommissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("commission rate %s must be in [0, 1)", c.CommissionRate)
	}
	if c.TxMaxAttempts == 0 {
		return errors.New("tx max attempts must be positive")
	}
	return nil
}

func loadFlags(fs *flag.FlagSet, flagConfig *Config, args []string) {
	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	fs.StringVar(&flagConfig.StorageDriver, "s", StorageDriverPostgres, "Storage driver: postgres or memory")
	fs.StringVar(&flagConfig.PaymentSystemAddress, "p", "", "Payment gateway base address")

	_ = fs.Parse(args)
}

// mergeConfig значения, которые задаются только через окружение, берутся из envConfig как есть.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	merged.StorageDriver = defaultIfBlank(envConfig.StorageDriver, flagsConfig.StorageDriver)
	merged.PaymentSystemAddress = defaultIfBlank(envConfig.PaymentSystemAddress, flagsConfig.PaymentSystemAddress)
	return &merged
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
