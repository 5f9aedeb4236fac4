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
	"fmt"
	"sort"
	"strings"
)

// caretChar returns the rune an annotation style draws its underline with.
func caretChar(style AnnotationStyle) byte {
	if style == Secondary {
		return '-'
	}
	return '^'
}

// railActive reports, for every rail column of g, whether some multi-line
// annotation owns that column and is active (strictly between its start and
// end lines) at line.
func railActive(g *fileGroup, line int) []bool {
	active := make([]bool, g.numRails)
	for _, m := range g.multi {
		if line > m.loc.StartLine && line < m.loc.EndLine {
			active[m.rail] = true
		}
	}
	return active
}

// railArea renders the 2*numRails-character rail prefix shared by every row
// kind. bend is -1 for a plain row; otherwise it names the rail column whose
// opening or closing sweep passes through this row, drawn as " _" (opening)
// or "|_" (closing). Rail columns farther from the separator than bend (a
// higher index) continue the sweep as "__"; columns nearer the separator
// fall back to their normal active/inactive state.
func railArea(active []bool, bend int, opening bool) string {
	var b strings.Builder
	for i := range active {
		switch {
		case i == bend:
			if opening {
				b.WriteString(" _")
			} else {
				b.WriteString("|_")
			}
		case bend >= 0 && i > bend:
			b.WriteString("__")
		case active[i]:
			b.WriteString("| ")
		default:
			b.WriteString("  ")
		}
	}
	return b.String()
}

// labelLines splits a label on embedded newlines, dropping a trailing empty
// piece produced by a label ending in \n (see the three-line label golden).
func labelLines(label string) []string {
	if label == "" {
		return nil
	}
	lines := strings.Split(label, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// appendLabelCont appends a LabelContRow for each continuation line of a
// label, aligning its text under labelCol (the content-column, counted from
// the start of the rail area, at which the label's first character sits on
// the row that introduced it).
func appendLabelCont(rows []planRow, rest []string, labelCol int, railBlank string) []planRow {
	for _, line := range rest {
		full := railBlank + strings.Repeat(" ", labelCol-len(railBlank)) + line
		rows = append(rows, planRow{kind: rowKindLabelCont, full: full})
	}
	return rows
}

// buildPlan lays out the full render plan for one file group: the ordered
// printed lines (with elision gaps collapsed), interleaved with inline
// annotation rows, multi-line opening and closing rows, and label
// continuation rows, following the draw order rules of §4.5.
func buildPlan(g *fileGroup) (rows []planRow, gw int) {
	lines := lineWindow(g)
	if len(lines) == 0 {
		return nil, 1
	}
	gw = gutterWidth(lines)
	railBlank := strings.Repeat("  ", g.numRails)

	byStartLine := make(map[int][]resolved)
	for _, r := range g.inline {
		byStartLine[r.loc.StartLine] = append(byStartLine[r.loc.StartLine], r)
	}
	openingsByLine := make(map[int][]multiline)
	closingsByLine := make(map[int][]multiline)
	for _, m := range g.multi {
		openingsByLine[m.loc.StartLine] = append(openingsByLine[m.loc.StartLine], m)
		closingsByLine[m.loc.EndLine] = append(closingsByLine[m.loc.EndLine], m)
	}

	prev := -2
	for _, line := range lines {
		if prev != -2 && line != prev+1 {
			rows = append(rows, planRow{kind: rowKindElision, full: elisionRow(g, prev+1, gw)})
		}
		prev = line

		active := railActive(g, line)
		rows = append(rows, planRow{
			kind: rowKindSource,
			line: line,
			full: railArea(active, -1, false) + g.file.LineText(line),
		})

		inline := append([]resolved(nil), byStartLine[line]...)
		sort.SliceStable(inline, func(a, b int) bool {
			if inline[a].loc.StartColumn != inline[b].loc.StartColumn {
				return inline[a].loc.StartColumn < inline[b].loc.StartColumn
			}
			if inline[a].loc.EndColumn != inline[b].loc.EndColumn {
				return inline[a].loc.EndColumn < inline[b].loc.EndColumn
			}
			return inline[a].index < inline[b].index
		})
		for _, r := range inline {
			rows = appendInlineRow(rows, g, r, railBlank)
		}

		closings := append([]multiline(nil), closingsByLine[line]...)
		sort.Slice(closings, func(a, b int) bool { return closings[a].rail < closings[b].rail })
		for _, m := range closings {
			rows = appendClosingRow(rows, g, m, railBlank)
		}

		openings := append([]multiline(nil), openingsByLine[line]...)
		sort.Slice(openings, func(a, b int) bool { return openings[a].rail < openings[b].rail })
		for _, m := range openings {
			active := railActive(g, line)
			full := railArea(active, m.rail, true) + strings.Repeat("_", m.loc.StartColumn-1) + string(caretChar(m.ann.Style))
			rows = append(rows, planRow{kind: rowKindRailOnly, full: full, style: m.ann.Style})
		}
	}
	return rows, gw
}

// appendInlineRow appends the caret row for a single-line or zero-width
// annotation, plus any label continuation rows.
func appendInlineRow(rows []planRow, g *fileGroup, r resolved, railBlank string) []planRow {
	active := railActive(g, r.loc.StartLine)
	pad := strings.Repeat(" ", r.loc.StartColumn-1)
	ch := caretChar(r.ann.Style)

	var carets string
	zeroWidth := r.loc.Kind == ZeroWidth
	if zeroWidth {
		carets = strings.Repeat(string(ch), 2)
	} else {
		carets = strings.Repeat(string(ch), r.loc.EndColumn-r.loc.StartColumn)
	}

	lines := labelLines(r.ann.Label)
	railLen := len(railArea(active, -1, false))
	labelCol := railLen + len(pad) + len(carets)

	full := railArea(active, -1, false) + pad + carets
	if len(lines) > 0 {
		if !zeroWidth {
			full += " "
			labelCol++
		}
		full += lines[0]
	}
	rows = append(rows, planRow{kind: rowKindAnnotation, full: full, style: r.ann.Style})
	if len(lines) > 1 {
		rows = appendLabelCont(rows, lines[1:], labelCol, railBlank)
	}
	return rows
}

// appendClosingRow appends the closing sweep row for a multi-line
// annotation's end line, plus any label continuation rows.
func appendClosingRow(rows []planRow, g *fileGroup, m multiline, railBlank string) []planRow {
	active := railActive(g, m.loc.EndLine)
	ch := caretChar(m.ann.Style)
	full := railArea(active, m.rail, false) + strings.Repeat("_", m.loc.EndColumn-1) + string(ch)

	railLen := len(railArea(active, m.rail, false))
	labelCol := railLen + (m.loc.EndColumn - 1) + 1

	lines := labelLines(m.ann.Label)
	if len(lines) > 0 {
		full += " " + lines[0]
		labelCol++
	}
	rows = append(rows, planRow{kind: rowKindRailOnly, full: full, style: m.ann.Style})
	if len(lines) > 1 {
		rows = appendLabelCont(rows, lines[1:], labelCol, railBlank)
	}
	return rows
}

// elisionRow renders the "..." row that stands in for a run of two or more
// uninteresting lines. representative is any line within the elided run,
// used to determine which rails continue through it.
func elisionRow(g *fileGroup, representative int, gw int) string {
	prefix := " " + fmt.Sprintf("%*s", gw, "...")
	if g.numRails == 0 {
		return prefix + "|"
	}
	active := railActive(g, representative)
	var b strings.Builder
	b.WriteString(prefix)
	for _, on := range active {
		if on {
			b.WriteString("| ")
		} else {
			b.WriteString("  ")
		}
	}
	return strings.TrimRight(b.String(), " ")
}
