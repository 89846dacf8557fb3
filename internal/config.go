package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for asc
type Config struct {
	Archive ArchiveConfig `mapstructure:"archive"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Summary SummaryConfig `mapstructure:"summary"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
}

// ArchiveConfig contains log archive settings
type ArchiveConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FetchConfig contains the defaults of the fetch command
type FetchConfig struct {
	Hours           int      `mapstructure:"hours"`
	Timezone        string   `mapstructure:"timezone"`
	IgnoreNicks     []string `mapstructure:"ignore_nicks"`
	OutputType      string   `mapstructure:"output_type"`
	OutputDirectory string   `mapstructure:"output_directory"`
	Format          string   `mapstructure:"format"`
	File            string   `mapstructure:"file"`
	OpenBrowser     bool     `mapstructure:"open_browser"`
}

// SummaryConfig contains settings of the OpenAI-compatible summary endpoint
type SummaryConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SpeechConfig contains text-to-speech settings
type SpeechConfig struct {
	Engine      string `mapstructure:"engine"` // piper, openai
	Model       string `mapstructure:"model"`
	Voice       string `mapstructure:"voice"`
	PiperBinary string `mapstructure:"piper_binary"`
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
}

// CacheConfig contains page cache settings
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Format string `mapstructure:"format"` // text, json
}

const (
	DefaultChannel      = "#openstack-ironic"
	DefaultSummaryURL   = "http://localhost:11434/v1"
	DefaultSummaryModel = "hf.co/mradermacher/Josiefied-DeepSeek-R1-0528-Qwen3-8B-abliterated-v1-i1-GGUF:Q4_K_M"
	DefaultPiperModel   = "en_GB-jenny_dioco-medium.onnx"
	DefaultOpenAIURL    = "https://api.openai.com/v1"
)

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("archive.base_url", DefaultArchiveURL)
	v.SetDefault("archive.timeout", "30s")

	v.SetDefault("fetch.hours", 14)
	v.SetDefault("fetch.timezone", "Pacific/Auckland")
	v.SetDefault("fetch.ignore_nicks", []string{"opendevreview"})
	v.SetDefault("fetch.output_type", string(OutputChat))
	v.SetDefault("fetch.output_directory", ".")
	v.SetDefault("fetch.format", "txt")
	v.SetDefault("fetch.file", "")
	v.SetDefault("fetch.open_browser", false)

	v.SetDefault("summary.base_url", DefaultSummaryURL)
	v.SetDefault("summary.model", DefaultSummaryModel)
	v.SetDefault("summary.api_key", "")
	v.SetDefault("summary.timeout", "10m")

	v.SetDefault("speech.engine", "piper")
	v.SetDefault("speech.model", DefaultPiperModel)
	v.SetDefault("speech.voice", "alloy")
	v.SetDefault("speech.piper_binary", "piper")
	v.SetDefault("speech.base_url", DefaultOpenAIURL)
	v.SetDefault("speech.api_key", "")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", "")

	v.SetDefault("log.format", "text")
}

// LoadConfig loads configuration from file and ASC_* environment variables.
// When configPath is empty, .asc.yaml is looked up in the working directory
// and then the home directory; a missing file is not an error.
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".asc")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("ASC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &ParseError{Source: "config", Key: v.ConfigFileUsed(), Err: err}
		}
		LogDebug("Config file not found, using defaults and environment variables")
	} else {
		LogDebug("Using config file %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Summary.APIKey == "" {
		cfg.Summary.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Speech.APIKey == "" {
		cfg.Speech.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Cache.Dir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			LogWarn("Page cache disabled: %v", err)
			cfg.Cache.Enabled = false
		}
		cfg.Cache.Dir = dir
	}

	return &cfg, nil
}

// DefaultConfig returns the configuration built from defaults only
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// defaults are static; failing here is a programming error
		panic(err)
	}
	if dir, err := DefaultCacheDir(); err == nil {
		cfg.Cache.Dir = dir
	}
	return &cfg
}
