// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logutil wires slog configuration to command line flags. Flag
// values are bound through viper so they can also come from a config file
// or environment variables.
package logutil

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds logging configuration resolved from flags and viper.
type Config struct {
	Level  string
	Format string
	Output string
}

// RegisterFlags registers the logging flags on fs and binds them to viper.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-format", "text", "Log format (json, text)")
	fs.String("log-output", "stderr", "Log output (stdout, stderr, or file path)")
	_ = viper.BindPFlag("log-level", fs.Lookup("log-level"))
	_ = viper.BindPFlag("log-format", fs.Lookup("log-format"))
	_ = viper.BindPFlag("log-output", fs.Lookup("log-output"))
}

// FromViper resolves the logging configuration after flags are parsed.
func FromViper() Config {
	return Config{
		Level:  viper.GetString("log-level"),
		Format: viper.GetString("log-format"),
		Output: viper.GetString("log-output"),
	}
}

// NewLogger builds a slog.Logger from cfg. Unrecognized settings fall back
// to defaults rather than failing: a CLI should not refuse to run because
// of a bad log flag.
func NewLogger(cfg Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	case "stderr", "":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			output = os.Stderr
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}
