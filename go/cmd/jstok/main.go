/*
Copyright 2025 Supabase, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// jstok tokenizes JavaScript source files with the permissive webrewrite
// lexer and prints or summarizes the resulting token streams.
package main

import (
	"log/slog"
	"os"

	"github.com/webrewrite/webrewrite/go/cmd/jstok/command"
)

func main() {
	if err := command.GetRootCommand().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
