// Package config loads dashboard settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

var DefaultBuilds = []string{"DefCore-2016.01-All", "Tempest-All-Tests"}

// Config is the runtime configuration of the dashboard.
type Config struct {
	Addr       string        `yaml:"addr"`
	MetricsURL string        `yaml:"metrics_url"`
	Timeout    time.Duration `yaml:"timeout"`
	Builds     []string      `yaml:"builds"`
	Artifacts  S3Config      `yaml:"artifacts"`
}

// S3Config enables presigned artifact links when Enabled is set.
type S3Config struct {
	Enabled   bool          `yaml:"enabled"`
	Endpoint  string        `yaml:"endpoint"`
	Region    string        `yaml:"region"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	Expiry    time.Duration `yaml:"expiry"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:       ":8080",
		MetricsURL: "http://127.0.0.1:5000",
		Timeout:    30 * time.Second,
		Builds:     append([]string(nil), DefaultBuilds...),
		Artifacts: S3Config{
			Region: "us-east-1",
			Expiry: time.Hour,
		},
	}
}

// Load parses args into a Config. Precedence is flag, then environment,
// then the file named by -config, then defaults.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("ci-metrics-dashboard", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("DASHBOARD_CONFIG"), "optional YAML config file")
	addr := fs.String("addr", "", "listen address (default :8080)")
	metricsURL := fs.String("metrics-url", os.Getenv("METRICS_URL"), "metrics API base URL (default http://127.0.0.1:5000)")
	timeout := fs.Duration("timeout", 0, "metrics API request timeout (default 30s)")
	builds := fs.String("builds", os.Getenv("BUILDS"), "comma separated build names shown on the builds page")

	s3Endpoint := fs.String("s3-endpoint", os.Getenv("S3_ENDPOINT"), "S3 endpoint URL for artifact links; setting it or -s3-region enables presigning")
	s3Region := fs.String("s3-region", os.Getenv("S3_REGION"), "S3 region")
	s3AccessKey := fs.String("s3-access-key", os.Getenv("AWS_ACCESS_KEY_ID"), "S3 access key")
	s3SecretKey := fs.String("s3-secret-key", os.Getenv("AWS_SECRET_ACCESS_KEY"), "S3 secret key")
	linkExpiry := fs.Duration("artifact-link-expiry", 0, "lifetime of presigned artifact links (default 1h)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *configPath != "" {
		if err := cfg.loadFile(*configPath); err != nil {
			return Config{}, err
		}
	}

	if *addr != "" {
		cfg.Addr = *addr
	}
	if *metricsURL != "" {
		cfg.MetricsURL = *metricsURL
	}
	if *timeout != 0 {
		cfg.Timeout = *timeout
	}
	if *builds != "" {
		cfg.Builds = SplitList(*builds)
	}
	if *s3Endpoint != "" || *s3Region != "" {
		cfg.Artifacts.Enabled = true
	}
	if *s3Endpoint != "" {
		cfg.Artifacts.Endpoint = *s3Endpoint
	}
	if *s3Region != "" {
		cfg.Artifacts.Region = *s3Region
	}
	if *s3AccessKey != "" {
		cfg.Artifacts.AccessKey = *s3AccessKey
	}
	if *s3SecretKey != "" {
		cfg.Artifacts.SecretKey = *s3SecretKey
	}
	if *linkExpiry != 0 {
		cfg.Artifacts.Expiry = *linkExpiry
	}

	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if len(c.Builds) == 0 {
		errs = append(errs, errors.New("at least one build name is required"))
	}
	for _, b := range c.Builds {
		if strings.TrimSpace(b) == "" {
			errs = append(errs, errors.New("build names must not be empty"))
			break
		}
	}
	if u, err := url.Parse(c.MetricsURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("metrics URL %q must be an absolute http(s) URL", c.MetricsURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Artifacts.Enabled && c.Artifacts.Expiry <= 0 {
		errs = append(errs, fmt.Errorf("artifact link expiry must be positive, got %s", c.Artifacts.Expiry))
	}
	return errors.Join(errs...)
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
