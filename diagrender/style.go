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

// Element names a region of a rendered diagnostic that can be styled
// independently.
type Element int

const (
	ElementHeader Element = iota
	ElementLocator
	ElementGutter
	ElementSeparator
	ElementRail
	ElementCaretPrimary
	ElementCaretSecondary
	ElementLabel
	ElementElision
	ElementSource
)

// Tokens is a pair of opaque byte strings emitted immediately before and
// after a styled run of content. For non-colorized output both are empty.
type Tokens struct {
	Open, Close string
}

// Wrap surrounds s with the token pair, doing nothing if both are empty.
func (t Tokens) Wrap(s string) string {
	if t.Open == "" && t.Close == "" {
		return s
	}
	return t.Open + s + t.Close
}

// Style is the color configuration collaborator: a pure function from an
// element and the diagnostic's severity to the tokens that should surround
// it. The core never inspects the tokens' contents; it only queries Style
// before writing each styled run and wraps the run with what comes back.
type Style interface {
	StyleFor(element Element, severity Severity) Tokens
}

// NoStyle never colorizes anything; every element maps to the empty token
// pair. It is the default for [Renderer] values that do not set Style.
type NoStyle struct{}

// StyleFor implements [Style].
func (NoStyle) StyleFor(Element, Severity) Tokens { return Tokens{} }

// ansiStyle is a small ANSI-escape stylesheet, grounded in the same
// convention as other compiler-style renderers: red for errors, yellow for
// warnings, cyan for notes/help, blue as a neutral accent for gutters, rails
// and non-primary underlines, and bold reserved for the parts of a
// diagnostic meant to draw the eye first (the header and primary carets).
type ansiStyle struct{}

// AnsiStyle is a ready-to-use colorized [Style] using plain ANSI SGR escape
// sequences. It does not attempt terminal capability detection; callers
// decide whether color is appropriate for their sink.
var AnsiStyle Style = ansiStyle{}

const ansiReset = "\033[0m"

func severityColor(s Severity) string {
	switch s {
	case Error, Bug:
		return "\033[1;31m"
	case Warning:
		return "\033[1;33m"
	case Note, Help:
		return "\033[1;36m"
	default:
		return ""
	}
}

const ansiAccent = "\033[0;34m"

func (ansiStyle) StyleFor(element Element, severity Severity) Tokens {
	switch element {
	case ElementHeader:
		return Tokens{Open: severityColor(severity), Close: ansiReset}
	case ElementLocator, ElementGutter, ElementSeparator, ElementRail, ElementElision:
		return Tokens{Open: ansiAccent, Close: ansiReset}
	case ElementCaretPrimary:
		return Tokens{Open: severityColor(severity), Close: ansiReset}
	case ElementCaretSecondary:
		return Tokens{Open: ansiAccent, Close: ansiReset}
	case ElementLabel:
		return Tokens{}
	case ElementSource:
		return Tokens{}
	default:
		return Tokens{}
	}
}
