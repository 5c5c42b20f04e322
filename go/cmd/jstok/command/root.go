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

// Package command implements the jstok CLI: a front end over the
// permissive JavaScript lexer for inspecting token streams.
package command

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/webrewrite/webrewrite/go/tools/logutil"
)

// JstokCommand holds the dependencies shared by jstok subcommands. Tests
// inject an in-memory filesystem and an output buffer.
type JstokCommand struct {
	fs     afero.Fs
	out    io.Writer
	logger *slog.Logger
}

// Logger returns the configured logger, defaulting until the root
// command's PersistentPreRunE has run.
func (jc *JstokCommand) Logger() *slog.Logger {
	if jc.logger == nil {
		return slog.Default()
	}
	return jc.logger
}

// GetRootCommand creates the root command wired to the real filesystem
// and stdout.
func GetRootCommand() *cobra.Command {
	return NewRootCommand(afero.NewOsFs(), os.Stdout)
}

// NewRootCommand creates the root command with injectable dependencies.
func NewRootCommand(fs afero.Fs, out io.Writer) *cobra.Command {
	jc := &JstokCommand{fs: fs, out: out}

	root := &cobra.Command{
		Use:   "jstok",
		Short: "Tokenize JavaScript sources with the permissive webrewrite lexer",
		Long: `jstok runs the webrewrite JavaScript lexer over source files and prints
the resulting token stream. The lexer is permissive: it accepts all legal
programs and tolerates most illegal ones, and its token stream concatenates
back to the input byte-for-byte.

Configuration may come from flags, from JSTOK_* environment variables, or
from a jstok.yaml file in the working directory.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			viper.SetEnvPrefix("JSTOK")
			viper.AutomaticEnv()
			viper.SetConfigName("jstok")
			viper.AddConfigPath(".")
			if err := viper.ReadInConfig(); err != nil {
				// A missing config file is fine; a malformed one is not.
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return err
				}
			}

			jc.logger = logutil.NewLogger(logutil.FromViper())
			return nil
		},
	}

	logutil.RegisterFlags(root.PersistentFlags())

	AddTokenizeCommand(root, jc)

	return root
}
