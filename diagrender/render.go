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
	"strings"
)

// Renderer is the facade over the render plan: it drives a [Diagnostic] or a
// full [Report] through the classifier, planner and row emitter, and writes
// the result to a [Sink].
//
// A Renderer holds no mutable state of its own once constructed and may be
// shared between concurrently running renders, provided its Style and the
// [FileTable]s passed to it are not mutated during a render.
type Renderer struct {
	// Style supplies the color tokens wrapped around each element. A nil
	// Style renders uncolorized, equivalent to [NoStyle].
	Style Style
}

func (r Renderer) style() Style {
	if r.Style == nil {
		return NoStyle{}
	}
	return r.Style
}

// Render writes every diagnostic in report to sink, in order, using files to
// resolve annotation file ids. It stops and returns the first error
// encountered, whether from an invalid span, an unknown file id, or a sink
// write failure. An invalid span or unknown file id is detected before any
// of that diagnostic is written; a sink write failure can leave the
// diagnostic being written partially output.
func (r Renderer) Render(sink Sink, files FileTable, report *Report) error {
	for _, d := range report.Diagnostics {
		if err := r.RenderDiagnostic(sink, files, d); err != nil {
			return err
		}
	}
	return nil
}

// RenderDiagnostic renders a single diagnostic to sink.
func (r Renderer) RenderDiagnostic(sink Sink, files FileTable, d Diagnostic) error {
	style := r.style()

	// Resolve every annotation before writing anything: an invalid span or
	// an unknown file id must fail the render with no partial output.
	order, groups, err := groupByFile(files, d.Annotations)
	if err != nil {
		return err
	}

	w := &writer{out: sink}
	w.WriteLine(style.StyleFor(ElementHeader, d.Severity).Wrap(header(d)))
	if w.err != nil {
		return w.err
	}

	for _, fileID := range order {
		g := groups[fileID]
		rows, gw := buildPlan(g)
		checkPlanInvariants(rows)

		loc := locatorLine(g, gw, style, d.Severity)
		w.WriteLine(loc)
		if w.err != nil {
			return w.err
		}

		for _, row := range rows {
			w.WriteLine(renderRow(row, gw, style, d.Severity))
			if w.err != nil {
				return w.err
			}
		}
	}

	for _, note := range d.Notes {
		w.WriteLine(note)
		if w.err != nil {
			return w.err
		}
	}

	return nil
}

// header formats the "<severity>[<name>]: <message>" line.
func header(d Diagnostic) string {
	if d.Name == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Name, d.Message)
}

// locatorLine formats the "--> path:line:col" line, using the first
// annotation declared against this file group as the location it points at.
func locatorLine(g *fileGroup, gw int, style Style, severity Severity) string {
	firstLine, firstCol := 1, 1
	best := -1
	for _, r := range g.inline {
		if best == -1 || r.index < best {
			best, firstLine, firstCol = r.index, r.loc.StartLine, r.loc.StartColumn
		}
	}
	for _, m := range g.multi {
		if best == -1 || m.index < best {
			best, firstLine, firstCol = m.index, m.loc.StartLine, m.loc.StartColumn
		}
	}

	indent := strings.Repeat(" ", gw)
	arrow := style.StyleFor(ElementLocator, severity).Wrap(
		fmt.Sprintf("--> %s:%d:%d", g.file.Path(), firstLine, firstCol),
	)
	return indent + " " + arrow
}

// renderRow turns a single plan row into its final text, applying styling
// per the row's kind. Per spec §6 the color collaborator is queried once per
// styled run. An elision row is a single run. On every other row the
// separator (and, on source rows, the gutter digits) is its own run, and the
// rest of the row, rail prefix included, is one run keyed by the row's
// dominant element.
func renderRow(row planRow, gw int, style Style, severity Severity) string {
	sep := style.StyleFor(ElementSeparator, severity).Wrap(" | ")

	switch row.kind {
	case rowKindSource:
		gutter := style.StyleFor(ElementGutter, severity).Wrap(fmt.Sprintf("%*d", gw, row.line))
		content := style.StyleFor(ElementSource, severity).Wrap(row.full)
		return gutter + sep + content
	case rowKindElision:
		return style.StyleFor(ElementElision, severity).Wrap(row.full)
	case rowKindAnnotation, rowKindRailOnly:
		elem := ElementCaretPrimary
		if row.style == Secondary {
			elem = ElementCaretSecondary
		}
		gutter := strings.Repeat(" ", gw)
		content := style.StyleFor(elem, severity).Wrap(row.full)
		return gutter + sep + content
	default: // rowKindLabelCont
		gutter := strings.Repeat(" ", gw)
		content := style.StyleFor(ElementLabel, severity).Wrap(row.full)
		return gutter + sep + content
	}
}
