package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gostconsole/internal/flagx"
	"github.com/dmitrijs2005/gostconsole/internal/timex"
)

// fileConfig is the on-disk shape of Config.
type fileConfig struct {
	APIBaseURL  string         `json:"api_base_url" yaml:"api_base_url"`
	Timeout     timex.Duration `json:"timeout" yaml:"timeout"`
	StorePath   string         `json:"store_path" yaml:"store_path"`
	LogLevel    string         `json:"log_level" yaml:"log_level"`
	LogFormat   string         `json:"log_format" yaml:"log_format"`
	MetricsAddr string         `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on
// read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.Timeout.Duration > 0 {
		cfg.Timeout = fc.Timeout.Duration
	}
	if fc.StorePath != "" {
		cfg.StorePath = fc.StorePath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.MetricsAddr != "" {
		cfg.MetricsAddr = fc.MetricsAddr
	}
}
