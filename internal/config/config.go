package config

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OutputConfig configures where generated files go.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// AnalysisConfig configures the tutorial workflow parameters.
type AnalysisConfig struct {
	Reference      string  `yaml:"reference" mapstructure:"reference"`
	GroupKey       string  `yaml:"group_key" mapstructure:"group_key"`
	NumericKey     string  `yaml:"numeric_key" mapstructure:"numeric_key"`
	BufferRadiusM  float64 `yaml:"buffer_radius_m" mapstructure:"buffer_radius_m"`
	BufferSegments int     `yaml:"buffer_segments" mapstructure:"buffer_segments"`
	Concurrency    int     `yaml:"concurrency" mapstructure:"concurrency"`
}

// RenderConfig configures map and chart output.
type RenderConfig struct {
	Enabled  bool    `yaml:"enabled" mapstructure:"enabled"`
	WidthIn  float64 `yaml:"width_in" mapstructure:"width_in"`
	HeightIn float64 `yaml:"height_in" mapstructure:"height_in"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOTUTORIAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("output.dir", "output")
	v.SetDefault("analysis.reference", "New York")
	v.SetDefault("analysis.group_key", "region")
	v.SetDefault("analysis.numeric_key", "population")
	v.SetDefault("analysis.buffer_radius_m", 300000.0)
	v.SetDefault("analysis.buffer_segments", 32)
	v.SetDefault("analysis.concurrency", 0)
	v.SetDefault("render.enabled", true)
	v.SetDefault("render.width_in", 10.0)
	v.SetDefault("render.height_in", 8.0)

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

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Output.Dir == "" {
		problems = append(problems, "output.dir is required")
	}
	if c.Analysis.GroupKey == "" {
		problems = append(problems, "analysis.group_key is required")
	}
	if c.Analysis.NumericKey == "" {
		problems = append(problems, "analysis.numeric_key is required")
	}
	if r := c.Analysis.BufferRadiusM; math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		problems = append(problems, "analysis.buffer_radius_m must be > 0")
	}
	if c.Analysis.BufferSegments < 3 {
		problems = append(problems, "analysis.buffer_segments must be >= 3")
	}
	if c.Analysis.Concurrency < 0 || c.Analysis.Concurrency > 64 {
		problems = append(problems, "analysis.concurrency must be between 0 and 64")
	}
	if c.Render.Enabled && (c.Render.WidthIn <= 0 || c.Render.HeightIn <= 0) {
		problems = append(problems, "render.width_in and render.height_in must be > 0")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, "log.format must be json or console")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
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
