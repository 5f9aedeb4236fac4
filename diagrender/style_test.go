// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diagrender_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mschae23/diagrender"
)

func TestAnsiStyleTokens(t *testing.T) {
	const (
		red    = "\033[1;31m"
		yellow = "\033[1;33m"
		cyan   = "\033[1;36m"
		blue   = "\033[0;34m"
		reset  = "\033[0m"
	)

	tests := []struct {
		name     string
		element  diagrender.Element
		severity diagrender.Severity
		wantOpen string
	}{
		{"error header is red", diagrender.ElementHeader, diagrender.Error, red},
		{"bug header is also red", diagrender.ElementHeader, diagrender.Bug, red},
		{"warning header is yellow", diagrender.ElementHeader, diagrender.Warning, yellow},
		{"note header is cyan", diagrender.ElementHeader, diagrender.Note, cyan},
		{"help header is cyan", diagrender.ElementHeader, diagrender.Help, cyan},
		{"gutter is the blue accent regardless of severity", diagrender.ElementGutter, diagrender.Warning, blue},
		{"separator is the blue accent", diagrender.ElementSeparator, diagrender.Error, blue},
		{"rail is the blue accent", diagrender.ElementRail, diagrender.Error, blue},
		{"elision is the blue accent", diagrender.ElementElision, diagrender.Error, blue},
		{"primary carets match the severity color", diagrender.ElementCaretPrimary, diagrender.Warning, yellow},
		{"secondary carets use the blue accent", diagrender.ElementCaretSecondary, diagrender.Error, blue},
		{"label text is left unstyled", diagrender.ElementLabel, diagrender.Error, ""},
		{"source text is left unstyled", diagrender.ElementSource, diagrender.Error, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tok := diagrender.AnsiStyle.StyleFor(tc.element, tc.severity)
			assert.Equal(t, tc.wantOpen, tok.Open)
			if tc.wantOpen == "" {
				assert.Empty(t, tok.Close)
			} else {
				assert.Equal(t, reset, tok.Close)
			}
		})
	}
}

func TestRenderDiagnosticWithAnsiStyle(t *testing.T) {
	file := diagrender.NewIndexedFile(diagrender.File{
		Path: "src/a.txt",
		Text: "let x = 1\nlet y = 2\n",
	})

	var sb strings.Builder
	r := diagrender.Renderer{Style: diagrender.AnsiStyle}
	err := r.RenderDiagnostic(&sb, diagrender.Files{file}, diagrender.Diagnostic{
		Severity: diagrender.Error,
		Message:  "Test message",
		Annotations: []diagrender.Annotation{
			{FileID: 0, Span: diagrender.ByteSpan{Start: 0, End: 3}, Label: "annotation 1", Style: diagrender.Primary},
		},
	})
	require.NoError(t, err)

	got := sb.String()
	assert.Contains(t, got, "\033[1;31merror: Test message\033[0m",
		"the header is wrapped in the error severity color")
	assert.Contains(t, got, "\033[0;34m1\033[0m", "the gutter digit is wrapped in the accent color")
	assert.Contains(t, got, "\033[1;31m^^^ annotation 1\033[0m",
		"the primary caret run, including its inline label, is wrapped in the error severity color")
}
