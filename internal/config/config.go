// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/billflow-cli/internal/invoice"
)

// Config holds the full application configuration.
type Config struct {
	Convert ConvertConfig `yaml:"convert" mapstructure:"convert"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ConvertConfig configures a single-file conversion.
type ConvertConfig struct {
	Strategy     string  `yaml:"strategy" mapstructure:"strategy"`
	VATRate      float64 `yaml:"vat_rate" mapstructure:"vat_rate"`
	PayerAccount string  `yaml:"payer_account" mapstructure:"payer_account"`
	PayerName    string  `yaml:"payer_name" mapstructure:"payer_name"`
	OutputDir    string  `yaml:"output_dir" mapstructure:"output_dir"`
}

// BatchConfig configures multi-folder batch conversion.
type BatchConfig struct {
	Folders            []FolderConfig `yaml:"folders" mapstructure:"folders"`
	MaxConcurrentFiles int            `yaml:"max_concurrent_files" mapstructure:"max_concurrent_files"`
}

// FolderConfig names one input folder and where its outputs go.
type FolderConfig struct {
	Input        string `yaml:"input" mapstructure:"input"`
	Output       string `yaml:"output" mapstructure:"output"`
	PayerAccount string `yaml:"payer_account" mapstructure:"payer_account"`
	PayerName    string `yaml:"payer_name" mapstructure:"payer_name"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks that configuration required by the given command mode is
// present and within bounds.
func (c *Config) Validate(mode string) error {
	var problems []string

	if _, err := invoice.ParseStrategy(c.Convert.Strategy); err != nil {
		problems = append(problems, "convert.strategy must be factor or discounted")
	}
	if c.Convert.VATRate < 0 || c.Convert.VATRate >= 1 {
		problems = append(problems, "convert.vat_rate must be in [0, 1)")
	}
	switch c.Store.Driver {
	case "sqlite", "postgres", "off":
	default:
		problems = append(problems, "store.driver must be sqlite, postgres, or off")
	}
	if c.Store.Driver != "off" && c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}

	switch mode {
	case "convert":
	case "batch":
		if c.Batch.MaxConcurrentFiles < 1 || c.Batch.MaxConcurrentFiles > 32 {
			problems = append(problems, "batch.max_concurrent_files must be between 1 and 32")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BILLFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("convert.strategy", string(invoice.StrategyFactor))
	v.SetDefault("convert.vat_rate", invoice.DefaultVATRate)
	v.SetDefault("convert.output_dir", ".")
	v.SetDefault("batch.max_concurrent_files", 4)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "billflow.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
