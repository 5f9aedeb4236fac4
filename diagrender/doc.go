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

// Package diagrender renders structured diagnostics — a severity, a
// message, a set of annotations pointing into source files, and optional
// notes — into the kind of two-dimensional source excerpt familiar from
// modern compiler error messages:
//
//	error[E0308]: mismatched types
//	  --> src/main.go:1:1
//	1 | let x = 1
//	  | ^^^ expected `i64`, found `i32`
//	2 | let y = 2
//
// # Usage
//
// Index the files a diagnostic's annotations point into with
// [NewIndexedFile], collect them into a [Files] table, build a [Diagnostic]
// (or a whole [Report]) as an explicit record, and hand both to a
// [Renderer]:
//
//	files := diagrender.Files{diagrender.NewIndexedFile(diagrender.File{
//		Path: "src/main.go",
//		Text: source,
//	})}
//	err := (diagrender.Renderer{}).RenderDiagnostic(os.Stdout, files, diagrender.Diagnostic{
//		Severity: diagrender.Error,
//		Message:  "undefined: x",
//		Annotations: []diagrender.Annotation{
//			{FileID: 0, Span: diagrender.ByteSpan{Start: 12, End: 13}, Style: diagrender.Primary},
//		},
//	})
//
// # Multi-line annotations
//
// An annotation whose span crosses a line boundary draws a rail between the
// gutter and the source text: an underscore sweep from its start column down to the
// rail, a vertical bar beside every line the annotation passes through, and
// a second sweep back out to its end column, where its label is printed.
// Multiple simultaneous multi-line annotations are assigned distinct rail
// columns, ordered so that the widest span sits nearest the gutter.
//
// # Scope
//
// This package performs no terminal capability detection, no locale-aware
// text shaping, and no grapheme-cluster-aware column measurement: a column
// is a count of bytes from the start of its line, plus one. Colorization is
// delegated entirely to the [Style] a [Renderer] is configured with;
// diagnostic construction is left to the caller, who is expected to
// populate [Diagnostic] directly rather than through a builder.
package diagrender
