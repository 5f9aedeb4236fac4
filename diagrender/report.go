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

package diagrender

// Severity is the severity of a [Diagnostic].
type Severity int8

const (
	Error Severity = iota
	Warning
	Note
	Help
	Bug
)

// String returns the lowercase name used in a rendered diagnostic's header.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	case Bug:
		return "bug"
	default:
		return "unknown"
	}
}

// AnnotationStyle distinguishes the two ways an [Annotation] can be drawn.
type AnnotationStyle int8

const (
	// Primary annotations draw with ^ carets.
	Primary AnnotationStyle = iota
	// Secondary annotations draw with - dashes.
	Secondary
)

// ByteSpan is a half-open byte range [Start, End) into some file, identified
// only by its offsets; the file itself is named out-of-band by an
// [Annotation]'s FileID.
type ByteSpan struct {
	Start, End int
}

// Annotation is a labelled span within one file of a [Diagnostic].
type Annotation struct {
	// FileID indexes into the [FileTable] passed to the renderer.
	FileID int
	Span   ByteSpan
	// Label is optional and may contain embedded newlines, in which case
	// each additional line is rendered as a continuation row aligned under
	// the first line. A trailing newline does not produce an empty
	// continuation row.
	Label string
	Style AnnotationStyle
}

// Diagnostic is a single structured diagnostic: a severity, a message, a set
// of annotations pointing into source files, and optional trailing notes.
//
// This is an explicit configuration record rather than a fluent builder:
// callers populate the fields directly. A diagnostic exclusively owns its
// Annotations and Notes slices for the duration of a render.
type Diagnostic struct {
	Severity Severity
	// Name is an optional short, machine-readable identifier shown in
	// brackets after the severity, e.g. "error[E0308]: ...".
	Name    string
	Message string

	Annotations []Annotation
	// Notes are free-form strings shown after the last file group.
	Notes []string
}

// FileTable maps the integer file ids used by [Annotation.FileID] to the
// indexed source files they refer to. The core never performs filesystem
// I/O; all bytes come from the table the caller supplies.
type FileTable interface {
	File(id int) (file *IndexedFile, ok bool)
}

// Files is the slice-backed [FileTable]: the annotation's FileID is simply
// an index into the slice.
type Files []*IndexedFile

// File implements [FileTable].
func (fs Files) File(id int) (*IndexedFile, bool) {
	if id < 0 || id >= len(fs) {
		return nil, false
	}
	return fs[id], true
}

// Report is an ordered collection of diagnostics, rendered together by a
// [Renderer].
type Report struct {
	Diagnostics []Diagnostic
}

// Add appends a diagnostic to the report and returns the report for
// chaining.
func (r *Report) Add(d Diagnostic) *Report {
	r.Diagnostics = append(r.Diagnostics, d)
	return r
}
