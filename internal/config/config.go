package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arun3676/llm911/internal/logging"
)

// Version is the release version baked into the binary.
const Version = "0.1.0"

// Config holds all LLM 911 configuration.
type Config struct {
	Addr            string
	DataDir         string
	RepoURL         string
	LogLevel        string
	ShutdownTimeout time.Duration

	LLM     LLMConfig
	Sandbox SandboxConfig
	Status  StatusConfig
	Report  ReportConfig
}

// LLMConfig holds language-model service settings.
type LLMConfig struct {
	APIKey string
	Model  string
}

// SandboxConfig holds sandbox-provisioning service settings.
// An empty APIKey disables the feature.
type SandboxConfig struct {
	APIKey   string
	Endpoint string
}

// StatusConfig holds the optional provider status-page check.
// An empty URL disables the check.
type StatusConfig struct {
	URL string
}

// ReportConfig holds report sink settings.
type ReportConfig struct {
	Sink string // "none", "stdout", "file"
	Path string
}

// MissingKeyError reports a feature invoked without its required API key.
type MissingKeyError struct {
	Key     string // environment variable name
	Feature string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s is not set; %s is unavailable", e.Key, e.Feature)
}

// fileConfig mirrors Config for the optional YAML file. Durations are strings
// ("10s") and parsed after decoding.
type fileConfig struct {
	Addr            string `yaml:"addr"`
	DataDir         string `yaml:"data_dir"`
	RepoURL         string `yaml:"repo_url"`
	LogLevel        string `yaml:"log_level"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`

	LLM struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"llm"`
	Sandbox struct {
		APIKey   string `yaml:"api_key"`
		Endpoint string `yaml:"endpoint"`
	} `yaml:"sandbox"`
	Status struct {
		URL string `yaml:"url"`
	} `yaml:"status"`
	Report struct {
		Sink string `yaml:"sink"`
		Path string `yaml:"path"`
	} `yaml:"report"`
}

const defaultConfigPath = "llm911.yaml"

// Load builds configuration from defaults, then the optional YAML file, then
// environment variables. Env always wins so a file can be checked in with
// placeholders and overridden per deployment.
func Load() (Config, error) {
	cfg := Config{
		Addr:            ":8911",
		DataDir:         "data",
		RepoURL:         "https://github.com/arun3676/LLM-911.git",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
		LLM: LLMConfig{
			Model: "gemini-2.5-flash",
		},
		Sandbox: SandboxConfig{
			Endpoint: "https://app.daytona.io/api",
		},
		Report: ReportConfig{
			Sink: "none",
			Path: "reports.ndjson",
		},
	}

	if err := applyFile(&cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyFile overlays the YAML file named by LLM911_CONFIG, or llm911.yaml when
// present. A missing default file is not an error; a missing explicit one is.
func applyFile(cfg *Config) error {
	path := os.Getenv("LLM911_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&cfg.Addr, fc.Addr)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.RepoURL, fc.RepoURL)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LLM.APIKey, fc.LLM.APIKey)
	setString(&cfg.LLM.Model, fc.LLM.Model)
	setString(&cfg.Sandbox.APIKey, fc.Sandbox.APIKey)
	setString(&cfg.Sandbox.Endpoint, fc.Sandbox.Endpoint)
	setString(&cfg.Status.URL, fc.Status.URL)
	setString(&cfg.Report.Sink, fc.Report.Sink)
	setString(&cfg.Report.Path, fc.Report.Path)

	if fc.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("config: %s: shutdown_timeout: %w", path, err)
		}
		cfg.ShutdownTimeout = d
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Addr, os.Getenv("LLM911_ADDR"))
	setString(&cfg.DataDir, os.Getenv("LLM911_DATA_DIR"))
	setString(&cfg.RepoURL, os.Getenv("LLM911_REPO_URL"))
	setString(&cfg.LogLevel, os.Getenv("LLM911_LOG_LEVEL"))
	setString(&cfg.LLM.APIKey, os.Getenv("LLM911_GEMINI_API_KEY"))
	setString(&cfg.LLM.Model, os.Getenv("LLM911_MODEL"))
	setString(&cfg.Sandbox.APIKey, os.Getenv("LLM911_DAYTONA_API_KEY"))
	setString(&cfg.Sandbox.Endpoint, os.Getenv("LLM911_DAYTONA_ENDPOINT"))
	setString(&cfg.Status.URL, os.Getenv("LLM911_STATUS_URL"))
	setString(&cfg.Report.Sink, os.Getenv("LLM911_REPORT_SINK"))
	setString(&cfg.Report.Path, os.Getenv("LLM911_REPORT_FILE"))
	cfg.ShutdownTimeout = getenvDuration("LLM911_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
}

// Validate checks the loaded configuration and reports every problem at once.
// API keys are deliberately not required here: each feature degrades to a
// visible "not configured" message instead of refusing to start.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.LLM.Model == "" {
		errs = append(errs, errors.New("llm model must not be empty"))
	}
	if info, err := os.Stat(c.DataDir); err != nil || !info.IsDir() {
		errs = append(errs, fmt.Errorf("data dir %q does not exist", c.DataDir))
	}
	switch c.Report.Sink {
	case "none", "stdout", "file":
	default:
		errs = append(errs, fmt.Errorf("report sink must be none, stdout or file, got %q", c.Report.Sink))
	}
	if c.Report.Sink == "file" && c.Report.Path == "" {
		errs = append(errs, errors.New("report sink is file but report path is empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
