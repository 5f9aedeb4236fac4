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

// Span is a half-open byte range [Start, End) within an [IndexedFile].
type Span struct {
	File       *IndexedFile
	Start, End int
}

// Text returns the text corresponding to this span.
func (s Span) Text() string {
	return s.File.Text()[s.Start:s.End]
}

// SpanKind classifies a [LocatedSpan].
type SpanKind int

const (
	// SingleLine spans start and end on the same line and have nonzero
	// width.
	SingleLine SpanKind = iota
	// MultiLine spans end on a line strictly after the one they start on.
	MultiLine
	// ZeroWidth spans have Start == End. This takes priority over the other
	// two classifications, even when the span sits at a line boundary.
	ZeroWidth
)

// LocatedSpan is a [Span] that has been resolved into editor coordinates.
type LocatedSpan struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
	Kind                   SpanKind
}

// Resolve lifts a byte-offset span into a [LocatedSpan].
//
// Two boundary rules apply:
//
//   - End-at-newline: if End sits immediately after a newline (i.e. at the
//     start of the following line) and End > Start, the end location is
//     pinned to the previous line's final column instead of column 1 of the
//     next line. This keeps underlines from spilling onto a line the span
//     does not actually touch.
//   - Zero-width: a span with Start == End is always classified ZeroWidth,
//     even if Start sits at a line boundary.
func (s Span) Resolve() (LocatedSpan, error) {
	text := s.File.Text()
	if s.End < s.Start || s.Start < 0 || s.End > len(text) {
		return LocatedSpan{}, &InvalidSpanError{Span: s}
	}

	start := s.File.Location(s.Start)

	var end Location
	if s.End > s.Start && s.End > 0 && text[s.End-1] == '\n' {
		end = s.File.Location(s.End - 1)
	} else {
		end = s.File.Location(s.End)
	}

	located := LocatedSpan{
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
	}

	switch {
	case s.Start == s.End:
		located.Kind = ZeroWidth
	case located.EndLine > located.StartLine:
		located.Kind = MultiLine
	default:
		located.Kind = SingleLine
	}
	return located, nil
}
