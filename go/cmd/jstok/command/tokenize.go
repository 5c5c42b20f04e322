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

package command

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/webrewrite/webrewrite/go/js/keywords"
	"github.com/webrewrite/webrewrite/go/js/lexer"
)

// tokenRecord is one emitted token in a json or yaml dump.
type tokenRecord struct {
	Offset int    `json:"offset" yaml:"offset"`
	Type   string `json:"type" yaml:"type"`
	Text   string `json:"text" yaml:"text"`
}

// AddTokenizeCommand registers the tokenize subcommand on root.
func AddTokenizeCommand(root *cobra.Command, jc *JstokCommand) {
	var (
		format  string
		summary bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "tokenize [files...]",
		Short: "Lex JavaScript files and print their token streams",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want text, json, or yaml)", format)
			}

			if err := jc.tokenizeAll(args, format, summary); err != nil {
				return err
			}
			if watch {
				return jc.watchFiles(cmd, args, format, summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print per-kind token counts instead of the stream")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and re-tokenize files when they change")

	root.AddCommand(cmd)
}

// tokenizeAll lexes every file and reports a single error if any scan
// failed, after attempting all of them.
func (jc *JstokCommand) tokenizeAll(files []string, format string, summary bool) error {
	l := &lexer.Lexer{}
	failed := 0
	for _, path := range files {
		if err := jc.tokenizeFile(l, path, format, summary); err != nil {
			jc.Logger().Error("tokenization failed", "file", path, "err", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to tokenize", failed, len(files))
	}
	return nil
}

func (jc *JstokCommand) tokenizeFile(l *lexer.Lexer, path, format string, summary bool) error {
	data, err := afero.ReadFile(jc.fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	l.Load(data)
	var records []tokenRecord
	counts := make(map[string]int)
	offset := 0
	for {
		typ, text := l.NextToken()
		if typ == keywords.EndOfInput {
			break
		}
		if summary {
			counts[typ.String()]++
		} else {
			records = append(records, tokenRecord{Offset: offset, Type: typ.String(), Text: string(text)})
		}
		offset += len(text)
	}
	if l.HasError() {
		return fmt.Errorf("%s: unterminated or invalid construct near byte %d", path, offset)
	}

	jc.Logger().Debug("tokenized file", "file", path, "bytes", len(data))

	if summary {
		return jc.printSummary(path, counts)
	}
	switch format {
	case "json":
		enc := json.NewEncoder(jc.out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(jc.out)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range records {
			if _, err := fmt.Fprintf(jc.out, "%8d  %-22s %q\n", r.Offset, r.Type, r.Text); err != nil {
				return err
			}
		}
		return nil
	}
}

func (jc *JstokCommand) printSummary(path string, counts map[string]int) error {
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	if _, err := fmt.Fprintf(jc.out, "%s:\n", path); err != nil {
		return err
	}
	for _, k := range kinds {
		if _, err := fmt.Fprintf(jc.out, "  %-22s %d\n", k, counts[k]); err != nil {
			return err
		}
	}
	return nil
}

// watchFiles re-tokenizes files as they change until the command is
// interrupted. Watching works on the real filesystem only.
func (jc *JstokCommand) watchFiles(cmd *cobra.Command, files []string, format string, summary bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range files {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := jc.Logger()
	logger.Info("watching for changes", "files", len(files))

	l := &lexer.Lexer{}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := jc.tokenizeFile(l, event.Name, format, summary); err != nil {
				logger.Error("tokenization failed", "file", event.Name, "err", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "err", werr)
		}
	}
}
