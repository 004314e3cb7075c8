package xmltree

import (
	"fmt"
	"strings"
)

// Path is a compiled lookup expression.
//
// Supported syntax: steps separated by "/", each an element name or "*",
// optionally followed by one [@attr="value"] predicate. A leading ".//"
// makes the first step match descendants at any depth.
type Path struct {
	raw        string
	descendant bool
	steps      []step
}

type step struct {
	name      string
	attr      string
	value     string
	predicate bool
}

func (s step) match(e *Element) bool {
	if s.name != "*" && s.name != e.Name {
		return false
	}
	if !s.predicate {
		return true
	}
	v, ok := e.Attr(s.attr)
	return ok && v == s.value
}

// Compile parses a path expression.
func Compile(path string) (Path, error) {
	p := Path{raw: path}
	rest := path
	switch {
	case strings.HasPrefix(rest, ".//"):
		p.descendant = true
		rest = rest[3:]
	case strings.HasPrefix(rest, "./"):
		rest = rest[2:]
	}
	if rest == "" {
		return Path{}, fmt.Errorf("xmltree: empty path %q", path)
	}

	for _, part := range splitSteps(rest) {
		s, err := parseStep(part)
		if err != nil {
			return Path{}, fmt.Errorf("xmltree: path %q: %w", path, err)
		}
		p.steps = append(p.steps, s)
	}
	return p, nil
}

// MustCompile is like Compile but panics on an invalid expression.
func MustCompile(path string) Path {
	p, err := Compile(path)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	return p.raw
}

// Find returns the first match below e, or nil. Each step narrows to its
// first match, so a/b only looks inside the first a.
func (p Path) Find(e *Element) *Element {
	current := e
	for i, s := range p.steps {
		if current == nil {
			return nil
		}
		pool := current.Children
		if i == 0 && p.descendant {
			pool = current.descendants()
		}
		var next *Element
		for _, child := range pool {
			if s.match(child) {
				next = child
				break
			}
		}
		current = next
	}
	return current
}

// FindAll returns all matches below e in document order.
func (p Path) FindAll(e *Element) []*Element {
	if e == nil {
		return nil
	}
	current := []*Element{e}
	for i, s := range p.steps {
		var next []*Element
		for _, c := range current {
			pool := c.Children
			if i == 0 && p.descendant {
				pool = c.descendants()
			}
			for _, child := range pool {
				if s.match(child) {
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// splitSteps splits on "/" outside of predicates so attribute values may
// contain slashes.
func splitSteps(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '/':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func parseStep(part string) (step, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if part == "" {
			return step{}, fmt.Errorf("empty step")
		}
		return step{name: part}, nil
	}

	s := step{name: part[:open], predicate: true}
	if s.name == "" {
		return step{}, fmt.Errorf("predicate without element name")
	}
	if !strings.HasSuffix(part, "]") {
		return step{}, fmt.Errorf("unterminated predicate in %q", part)
	}
	pred := part[open+1 : len(part)-1]
	if !strings.HasPrefix(pred, "@") {
		return step{}, fmt.Errorf("unsupported predicate %q", pred)
	}
	eq := strings.IndexByte(pred, '=')
	if eq < 0 {
		return step{}, fmt.Errorf("predicate %q has no value", pred)
	}
	s.attr = pred[1:eq]
	value := pred[eq+1:]
	if len(value) < 2 || (value[0] != '"' && value[0] != '\'') || value[len(value)-1] != value[0] {
		return step{}, fmt.Errorf("predicate value %q must be quoted", value)
	}
	s.value = value[1 : len(value)-1]
	return s, nil
}
