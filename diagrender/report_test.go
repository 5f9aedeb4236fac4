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

func render(t *testing.T, files diagrender.Files, d diagrender.Diagnostic) string {
	t.Helper()
	var sb strings.Builder
	r := diagrender.Renderer{}
	err := r.RenderDiagnostic(&sb, files, d)
	require.NoError(t, err)
	return sb.String()
}

func TestSingleLineLabelled(t *testing.T) {
	file := diagrender.NewIndexedFile(diagrender.File{
		Path: "src/a.txt",
		Text: "let x = 1\nlet y = 2\n",
	})

	got := render(t, diagrender.Files{file}, diagrender.Diagnostic{
		Severity: diagrender.Error,
		Name:     "test/one",
		Message:  "Test message",
		Annotations: []diagrender.Annotation{
			{FileID: 0, Span: diagrender.ByteSpan{Start: 0, End: 3}, Label: "annotation 1", Style: diagrender.Primary},
		},
	})

	want := "error[test/one]: Test message\n" +
		"  --> src/a.txt:1:1\n" +
		"1 | let x = 1\n" +
		"  | ^^^ annotation 1\n" +
		"2 | let y = 2\n"
	assert.Equal(t, want, got)
}

func TestSingleLineMultiLineLabel(t *testing.T) {
	file := diagrender.NewIndexedFile(diagrender.File{
		Path: "src/a.txt",
		Text: "let x = 1\nlet y = 2\n",
	})

	got := render(t, diagrender.Files{file}, diagrender.Diagnostic{
		Severity: diagrender.Error,
		Name:     "test/two",
		Message:  "Test message",
		Annotations: []diagrender.Annotation{
			{FileID: 0, Span: diagrender.ByteSpan{Start: 0, End: 3}, Label: "annotation 1\nsecond line", Style: diagrender.Primary},
		},
	})

	want := "error[test/two]: Test message\n" +
		"  --> src/a.txt:1:1\n" +
		"1 | let x = 1\n" +
		"  | ^^^ annotation 1\n" +
		"  |     second line\n" +
		"2 | let y = 2\n"
	assert.Equal(t, want, got)

	lines := strings.Split(got, "\n")
	caretRow := lines[3]
	contRow := lines[4]
	aCol := strings.IndexByte(caretRow, 'a')
	sCol := strings.IndexByte(contRow, 's')
	assert.Equal(t, aCol, sCol, "label continuation must align under the label's first character")
}

func TestZeroWidthLabelNoSeparatingSpace(t *testing.T) {
	file := diagrender.NewIndexedFile(diagrender.File{
		Path: "src/c.txt",
		Text: "abc\ndef\n",
	})

	got := render(t, diagrender.Files{file}, diagrender.Diagnostic{
		Severity: diagrender.Error,
		Name:     "test/zero",
		Message:  "Test message",
		Annotations: []diagrender.Annotation{
			{FileID: 0, Span: diagrender.ByteSpan{Start: 1, End: 1}, Label: "annotation 1", Style: diagrender.Primary},
		},
	})

	want := "error[test/zero]: Test message\n" +
		"  --> src/c.txt:1:2\n" +
		"1 | abc\n" +
		"  |  ^^annotation 1\n" +
		"2 | def\n"
	assert.Equal(t, want, got)
}

// formatLineN renders a fixed 7-byte-wide line of source text, e.g.
// "line01;", so that byte offsets in TestMultiLineWithElisionAndZeroWidth can
// be computed by hand alongside the expected output.
func formatLineN(i int) string {
	return "line" + string([]byte{byte('0' + i/10), byte('0' + i%10)}) + ";"
}

func TestMultiLineWithElisionAndZeroWidth(t *testing.T) {
	var lines []string
	for i := 1; i <= 12; i++ {
		lines = append(lines, formatLineN(i))
	}
	text := strings.Join(lines, "\n") + "\n"

	file := diagrender.NewIndexedFile(diagrender.File{
		Path: "src/multi.txt",
		Text: text,
	})

	got := render(t, diagrender.Files{file}, diagrender.Diagnostic{
		Severity: diagrender.Warning,
		Message:  "multi-line example",
		Annotations: []diagrender.Annotation{
			{FileID: 0, Span: diagrender.ByteSpan{Start: 0, End: 0}, Style: diagrender.Secondary},
			{FileID: 0, Span: diagrender.ByteSpan{Start: 8, End: 58}, Label: "outer span", Style: diagrender.Primary},
		},
	})

	want := "warning: multi-line example\n" +
		"  --> src/multi.txt:1:1\n" +
		"1 |   line01;\n" +
		"  |   --\n" +
		"2 |   line02;\n" +
		"  |  _^\n" +
		"3 | | line03;\n" +
		" ...|\n" +
		"7 | | line07;\n" +
		"8 |   line08;\n" +
		"  | |___^ outer span\n" +
		"9 |   line09;\n"
	assert.Equal(t, want, got)
}

func TestIdempotentRendering(t *testing.T) {
	file := diagrender.NewIndexedFile(diagrender.File{
		Path: "src/a.txt",
		Text: "let x = 1\nlet y = 2\n",
	})
	d := diagrender.Diagnostic{
		Severity: diagrender.Error,
		Message:  "Test message",
		Annotations: []diagrender.Annotation{
			{FileID: 0, Span: diagrender.ByteSpan{Start: 0, End: 3}, Label: "annotation 1", Style: diagrender.Primary},
		},
	}

	first := render(t, diagrender.Files{file}, d)
	second := render(t, diagrender.Files{file}, d)
	assert.Equal(t, first, second)
}

func TestOmittingSecondaryAnnotationOnlyRemovesItsOwnRows(t *testing.T) {
	file := diagrender.NewIndexedFile(diagrender.File{
		Path: "src/a.txt",
		Text: "let x = 1\nlet y = 2\n",
	})
	primary := diagrender.Annotation{FileID: 0, Span: diagrender.ByteSpan{Start: 0, End: 3}, Label: "primary", Style: diagrender.Primary}
	secondary := diagrender.Annotation{FileID: 0, Span: diagrender.ByteSpan{Start: 4, End: 5}, Label: "secondary", Style: diagrender.Secondary}

	withBoth := render(t, diagrender.Files{file}, diagrender.Diagnostic{
		Severity: diagrender.Error, Message: "m", Annotations: []diagrender.Annotation{primary, secondary},
	})
	withoutSecondary := render(t, diagrender.Files{file}, diagrender.Diagnostic{
		Severity: diagrender.Error, Message: "m", Annotations: []diagrender.Annotation{primary},
	})

	assert.Contains(t, withBoth, "primary")
	assert.NotContains(t, withoutSecondary, "secondary")
	assert.Contains(t, withoutSecondary, "primary")
	assert.Equal(t, withoutSecondary, strings.Replace(withBoth, "  |     - secondary\n", "", 1),
		"only the secondary annotation's own row differs")
}

func TestUnknownFileID(t *testing.T) {
	r := diagrender.Renderer{}
	var sb strings.Builder
	err := r.RenderDiagnostic(&sb, diagrender.Files{}, diagrender.Diagnostic{
		Severity:    diagrender.Error,
		Message:     "m",
		Annotations: []diagrender.Annotation{{FileID: 3, Span: diagrender.ByteSpan{Start: 0, End: 1}}},
	})
	var unknown *diagrender.UnknownFileError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 3, unknown.FileID)
}

func TestInvalidSpan(t *testing.T) {
	file := diagrender.NewIndexedFile(diagrender.File{Path: "a", Text: "abc"})
	r := diagrender.Renderer{}
	var sb strings.Builder
	err := r.RenderDiagnostic(&sb, diagrender.Files{file}, diagrender.Diagnostic{
		Severity:    diagrender.Error,
		Message:     "m",
		Annotations: []diagrender.Annotation{{FileID: 0, Span: diagrender.ByteSpan{Start: 2, End: 1}}},
	})
	var invalid *diagrender.InvalidSpanError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, sb.String(), "no partial output is written on failure")
}

func TestRenderReport(t *testing.T) {
	file := diagrender.NewIndexedFile(diagrender.File{
		Path: "src/a.txt",
		Text: "let x = 1\nlet y = 2\n",
	})
	files := diagrender.Files{file}

	first := diagrender.Diagnostic{
		Severity: diagrender.Error,
		Message:  "first problem",
		Annotations: []diagrender.Annotation{
			{FileID: 0, Span: diagrender.ByteSpan{Start: 0, End: 3}, Style: diagrender.Primary},
		},
	}
	second := diagrender.Diagnostic{
		Severity: diagrender.Warning,
		Message:  "second problem",
		Annotations: []diagrender.Annotation{
			{FileID: 0, Span: diagrender.ByteSpan{Start: 4, End: 5}, Style: diagrender.Secondary},
		},
	}
	// end < start: fails span resolution before anything for this diagnostic
	// is written.
	invalid := diagrender.Diagnostic{
		Severity:    diagrender.Error,
		Message:     "never written",
		Annotations: []diagrender.Annotation{{FileID: 0, Span: diagrender.ByteSpan{Start: 5, End: 4}}},
	}

	tests := []struct {
		name       string
		report     *diagrender.Report
		wantErrAs  any
		wantOutput string
	}{
		{
			name:       "every diagnostic is rendered in order",
			report:     new(diagrender.Report).Add(first).Add(second),
			wantOutput: render(t, files, first) + render(t, files, second),
		},
		{
			name:       "stops at the first error, leaving later diagnostics unwritten",
			report:     new(diagrender.Report).Add(first).Add(invalid).Add(second),
			wantErrAs:  new(*diagrender.InvalidSpanError),
			wantOutput: render(t, files, first),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			r := diagrender.Renderer{}
			err := r.Render(&sb, files, tc.report)

			if tc.wantErrAs != nil {
				require.ErrorAs(t, err, tc.wantErrAs)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantOutput, sb.String())
		})
	}
}
