package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	DefaultToolPath = "exiftool"
	DefaultTimeout  = 30 * time.Second
)

type Config struct {
	File         string
	ExifToolPath string
	Timeout      time.Duration
	Workers      int
	Verbose      bool
}

// FileConfig mirrors the YAML config file layout.
type FileConfig struct {
	Exiftool struct {
		Path    string        `yaml:"path"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"exiftool"`
	Scan struct {
		Workers int `yaml:"workers"`
	} `yaml:"scan"`
	Verbose bool `yaml:"verbose"`
}

// BindFlags registers the global flags on fs, writing into cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.File, "config", "c", "", "YAML config file")
	fs.StringVarP(&cfg.ExifToolPath, "exiftool", "e", "", "Path to the exiftool executable")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Maximum run time of a single exiftool call")
	fs.IntVarP(&cfg.Workers, "workers", "w", 0, "Parallel exiftool processes for scan (default: CPU count)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
}

// Resolve fills every setting not given on the command line from the
// environment, then the config file, then defaults.
func Resolve(fs *pflag.FlagSet, cfg Config) (Config, error) {
	changed := func(name string) bool {
		return fs != nil && fs.Changed(name)
	}

	if cfg.File == "" {
		cfg.File = envOrEmpty("EXIFMGR_CONFIG")
	}
	var file FileConfig
	if cfg.File != "" {
		loaded, err := Load(cfg.File)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	if !changed("exiftool") {
		cfg.ExifToolPath = firstNonEmpty(envOrEmpty("EXIFMGR_TOOL"), file.Exiftool.Path, DefaultToolPath)
	}

	if !changed("timeout") {
		cfg.Timeout = file.Exiftool.Timeout
		if raw := envOrEmpty("EXIFMGR_TIMEOUT"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				return Config{}, errors.New("invalid EXIFMGR_TIMEOUT, use a duration such as 30s")
			}
			cfg.Timeout = parsed
		}
		if cfg.Timeout == 0 {
			cfg.Timeout = DefaultTimeout
		}
	}
	if cfg.Timeout <= 0 {
		return Config{}, errors.New("timeout must be positive")
	}

	if !changed("workers") {
		cfg.Workers = file.Scan.Workers
		if raw := envOrEmpty("EXIFMGR_WORKERS"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return Config{}, errors.New("invalid EXIFMGR_WORKERS, use a whole number")
			}
			cfg.Workers = parsed
		}
	}
	if cfg.Workers < 0 {
		return Config{}, errors.New("workers must not be negative")
	}

	if !cfg.Verbose {
		cfg.Verbose = envTruthy("EXIFMGR_VERBOSE") || file.Verbose
	}

	return cfg, nil
}

// Load reads a YAML config file.
func Load(path string) (FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LookupTool resolves ExifToolPath against PATH.
func (c Config) LookupTool() (string, error) {
	path, err := exec.LookPath(c.ExifToolPath)
	if err != nil {
		return "", fmt.Errorf("exiftool not found at %q, install it or pass --exiftool: %w", c.ExifToolPath, err)
	}
	return path, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
