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

import (
	"slices"
	"strings"
	"sync"
)

// File is a source code file involved in a diagnostic.
//
// Path does not need to be a real filesystem path; it is used only for
// display.
type File struct {
	Path string
	Text string
}

// Location is a user-displayable location within a source file.
//
// Line and Column are 1-indexed, so the zero value can be used as a
// sentinel for "no location".
type Location struct {
	Offset int
	Line   int
	Column int
}

// IndexedFile is a [File] together with a line-start index, which permits
// O(log n) conversion of byte offsets into [Location]s.
//
// The index is built lazily on first use and is safe to share between
// goroutines once built; it is never mutated afterwards.
type IndexedFile struct {
	file File

	once sync.Once
	// lineStarts[i] is the byte offset of the first byte of line i+1 (the
	// index is 0-based; line numbers are recovered by adding one). There is
	// always an entry for line 1 (offset 0) and one after every newline, so
	// text ending in a newline has an empty final line. No end offset is
	// stored: the final line implicitly runs to len(file.Text).
	lineStarts []int
}

// NewIndexedFile constructs a line index for the given file. Building the
// index is deferred until the first call that needs it.
func NewIndexedFile(file File) *IndexedFile {
	return &IndexedFile{file: file}
}

// File returns the file this index was built from.
func (idx *IndexedFile) File() File { return idx.file }

// Path returns idx.File().Path.
func (idx *IndexedFile) Path() string { return idx.file.Path }

// Text returns idx.File().Text.
func (idx *IndexedFile) Text() string { return idx.file.Text }

func (idx *IndexedFile) build() {
	idx.once.Do(func() {
		idx.lineStarts = []int{0}
		text := idx.file.Text
		for {
			nl := strings.IndexByte(text, '\n')
			if nl == -1 {
				break
			}
			text = text[nl+1:]
			idx.lineStarts = append(idx.lineStarts, len(idx.file.Text)-len(text))
		}
	})
}

// LineCount returns the number of lines in the file, counting a final
// unterminated line (including an empty one) as a line of its own.
func (idx *IndexedFile) LineCount() int {
	idx.build()
	return len(idx.lineStarts)
}

// LineRange returns the half-open byte range [start, end) of the given
// 1-indexed line, not including its terminating newline. Requesting a line
// past the end of the file returns the zero range at the end of the text.
func (idx *IndexedFile) LineRange(line int) (start, end int) {
	idx.build()
	if line < 1 {
		return 0, 0
	}
	if line > len(idx.lineStarts) {
		n := len(idx.file.Text)
		return n, n
	}
	start = idx.lineStarts[line-1]
	if line == len(idx.lineStarts) {
		end = len(idx.file.Text)
	} else {
		end = idx.lineStarts[line] - 1 // Exclude the newline itself.
	}
	return start, end
}

// LineText returns the verbatim text of the given 1-indexed line, not
// including its terminating newline.
func (idx *IndexedFile) LineText(line int) string {
	start, end := idx.LineRange(line)
	return idx.file.Text[start:end]
}

// Location computes full line/column information for a byte offset.
//
// Column is simply the count of bytes between the line's start and offset,
// plus one; this package does not attempt grapheme- or rune-aware column
// widths (see the package doc comment).
func (idx *IndexedFile) Location(offset int) Location {
	idx.build()

	line, exact := slices.BinarySearch(idx.lineStarts, offset)
	if !exact {
		line--
	}

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: offset - idx.lineStarts[line] + 1,
	}
}
