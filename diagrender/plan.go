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
	"sort"
)

// resolved is an annotation together with its located span, grouped by file.
type resolved struct {
	ann   Annotation
	loc   LocatedSpan
	index int // original position in Diagnostic.Annotations, for tie-breaking
}

// multiline is a resolved annotation classified as spanning more than one
// line, together with its assigned rail column.
type multiline struct {
	resolved
	rail int
}

// fileGroup is the full set of annotations touching one file, partitioned
// into inline (single-line or zero-width) and multi-line classes, plus the
// rail assignment for the latter.
type fileGroup struct {
	file     *IndexedFile
	inline   []resolved
	multi    []multiline
	numRails int
}

// groupByFile partitions a diagnostic's annotations by file id, resolving
// each span and classifying it along the way. Returns file ids in the order
// they were first referenced, matching the order annotations were declared.
func groupByFile(files FileTable, anns []Annotation) ([]int, map[int]*fileGroup, error) {
	order := make([]int, 0, 4)
	groups := make(map[int]*fileGroup, 4)

	for i, ann := range anns {
		idx, ok := files.File(ann.FileID)
		if !ok {
			return nil, nil, &UnknownFileError{FileID: ann.FileID}
		}
		span := Span{File: idx, Start: ann.Span.Start, End: ann.Span.End}
		loc, err := span.Resolve()
		if err != nil {
			return nil, nil, err
		}

		g, seen := groups[ann.FileID]
		if !seen {
			g = &fileGroup{file: idx}
			groups[ann.FileID] = g
			order = append(order, ann.FileID)
		}

		r := resolved{ann: ann, loc: loc, index: i}
		if loc.Kind == MultiLine {
			g.multi = append(g.multi, multiline{resolved: r})
		} else {
			g.inline = append(g.inline, r)
		}
	}

	for _, g := range groups {
		assignRails(g)
	}

	return order, groups, nil
}

// assignRails gives every multi-line annotation in g a distinct rail column.
// Annotations are always sorted by start line ascending, then span length
// descending, then original order (outer spans nearest the separator) before
// assignment.
// A bitset tracks, for the lines spanned by each already-assigned rail,
// which indices are taken; every annotation receives the smallest index free
// across the full range of lines it spans.
func assignRails(g *fileGroup) {
	if len(g.multi) == 0 {
		return
	}

	order := make([]int, len(g.multi))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ma, mb := g.multi[order[a]], g.multi[order[b]]
		if ma.loc.StartLine != mb.loc.StartLine {
			return ma.loc.StartLine < mb.loc.StartLine
		}
		lenA := ma.loc.EndLine - ma.loc.StartLine
		lenB := mb.loc.EndLine - mb.loc.StartLine
		if lenA != lenB {
			return lenA > lenB
		}
		return ma.index < mb.index
	})

	// taken[line] is a bitset of rail indices already in use on that line.
	taken := make(map[int]uint64)
	maxRail := -1
	for _, i := range order {
		m := &g.multi[i]
		used := uint64(0)
		for l := m.loc.StartLine; l <= m.loc.EndLine; l++ {
			used |= taken[l]
		}
		rail := 0
		for used&(1<<uint(rail)) != 0 {
			rail++
		}
		m.rail = rail
		if rail > maxRail {
			maxRail = rail
		}
		for l := m.loc.StartLine; l <= m.loc.EndLine; l++ {
			taken[l] |= 1 << uint(rail)
		}
	}
	g.numRails = maxRail + 1
}

// rowKind discriminates the plan row variants named in the data model: a
// source row, an inline annotation row, a label continuation row, an elision
// row, or a rail-only row. Multi-line opening and closing rows are emitted as
// rail-only rows.
type rowKind int

const (
	rowKindSource rowKind = iota
	rowKindAnnotation
	rowKindLabelCont
	rowKindElision
	rowKindRailOnly
)

// planRow is one row of a render plan. full holds the row's content exactly
// as it will be written following the gutter and separator (or, for elision
// rows, the whole row, including its leading space and dots); it never
// includes styling tokens, which are applied by the row emitter.
type planRow struct {
	kind rowKind
	line int // meaningful only when kind == rowKindSource
	full string
	// style names the annotation style to color full with when kind is
	// rowKindAnnotation or rowKindRailOnly (a caret run, possibly sharing
	// its row with the first line of a label); meaningless otherwise.
	style AnnotationStyle
}

// lineWindow computes, for a file group, the ordered list of lines to print
// (the gutter width is computed from it by [gutterWidth]). Lines not in the returned slice but
// falling strictly between two consecutive printed lines are elided.
func lineWindow(g *fileGroup) []int {
	lineCount := g.file.LineCount()
	interesting := make(map[int]bool)
	mark := func(l int) {
		if l >= 1 && l <= lineCount {
			interesting[l] = true
		}
	}
	for _, r := range g.inline {
		mark(r.loc.StartLine)
	}
	for _, m := range g.multi {
		mark(m.loc.StartLine)
		mark(m.loc.EndLine)
	}
	if len(interesting) == 0 {
		return nil
	}

	show := make(map[int]bool, len(interesting)*3)
	for l := range interesting {
		show[l] = true
		if l-1 >= 1 {
			show[l-1] = true
		}
		if l+1 <= lineCount {
			show[l+1] = true
		}
	}

	lines := make([]int, 0, len(show))
	for l := range show {
		lines = append(lines, l)
	}
	sort.Ints(lines)

	// A gap of a single line is printed rather than elided: an elision row
	// only ever stands in for two or more lines.
	filled := make([]int, 0, len(lines))
	for i, l := range lines {
		if i > 0 && l == lines[i-1]+2 {
			filled = append(filled, l-1)
		}
		filled = append(filled, l)
	}
	return filled
}

// gutterWidth returns the decimal digit width of the largest line number in
// lines.
func gutterWidth(lines []int) int {
	max := 1
	for _, l := range lines {
		if l > max {
			max = l
		}
	}
	width := 1
	for max >= 10 {
		max /= 10
		width++
	}
	return width
}
