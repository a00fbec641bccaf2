// Package config loads runtime configuration for the console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   panel API base URL
//	-t int      per-request timeout (seconds)
//	-d string   path of the local SQLite store
//	-l string   log level
//	-m string   metrics listen address
//
// # File schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "api_base_url": "https://panel.example.com/api/v1",
//	  "timeout": "10s",
//	  "store_path": "console.db",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "metrics_addr": "127.0.0.1:9108"
//	}
//
// Empty values in the file keep the defaults. Environment variables are not
// read.
package config
