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

import "fmt"

// InvalidSpanError is returned when an annotation's span has End < Start,
// or either endpoint falls outside the bounds of the file's text.
//
// Rendering a diagnostic that contains an invalid span fails outright; no
// partial output is written.
type InvalidSpanError struct {
	Span Span
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf(
		"diagrender: invalid span [%d:%d) into %q (text is %d bytes long)",
		e.Span.Start, e.Span.End, e.Span.File.Path(), len(e.Span.File.Text()),
	)
}

// UnknownFileError is returned when an annotation refers to a file id that
// is not present in the [FileTable] passed to the renderer.
type UnknownFileError struct {
	FileID int
}

func (e *UnknownFileError) Error() string {
	return fmt.Sprintf("diagrender: annotation refers to unknown file id %d", e.FileID)
}
