// Package render turns a condition template and its collected field values
// into licence prose.
//
// Templates use `{name}` placeholders and `{first || second}` fallback
// chains. Rendering never fails: missing values substitute the empty string.
package render

import "strings"

// SegmentKind distinguishes literal text from placeholders.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentPlaceholder
	SegmentFallback
)

// Segment is one piece of a parsed template.
type Segment struct {
	Kind SegmentKind
	// Text holds the literal text for SegmentLiteral.
	Text string
	// Names holds one name for SegmentPlaceholder, two or more for SegmentFallback.
	Names []string
}

// Template is a parsed render template.
type Template []Segment

const fallbackSep = "||"

// Parse splits tpl into segments in a single pass. Braces that do not enclose
// a valid name or name chain are kept as literal text.
func Parse(tpl string) Template {
	var (
		out Template
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Segment{Kind: SegmentLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(tpl); {
		if tpl[i] != '{' {
			lit.WriteByte(tpl[i])
			i++
			continue
		}
		end := strings.IndexByte(tpl[i+1:], '}')
		if end < 0 {
			lit.WriteString(tpl[i:])
			break
		}
		body := tpl[i+1 : i+1+end]
		names, ok := parseNames(body)
		if !ok {
			// Keep the brace and rescan from the next byte so an inner
			// placeholder like "{{name}" is still found.
			lit.WriteByte('{')
			i++
			continue
		}
		flush()
		kind := SegmentPlaceholder
		if len(names) > 1 {
			kind = SegmentFallback
		}
		out = append(out, Segment{Kind: kind, Names: names})
		i += end + 2
	}
	flush()
	return out
}

func parseNames(body string) ([]string, bool) {
	parts := strings.Split(body, fallbackSep)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !isIdentifier(p) {
			return nil, false
		}
		names = append(names, p)
	}
	return names, true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Placeholders returns the distinct names referenced by t, in order of first
// appearance. Fallback chain members are all included.
func (t Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, seg := range t {
		for _, n := range seg.Names {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// String reassembles the template text in canonical form.
func (t Template) String() string {
	var b strings.Builder
	for _, seg := range t {
		switch seg.Kind {
		case SegmentLiteral:
			b.WriteString(seg.Text)
		default:
			b.WriteByte('{')
			b.WriteString(strings.Join(seg.Names, " "+fallbackSep+" "))
			b.WriteByte('}')
		}
	}
	return b.String()
}
