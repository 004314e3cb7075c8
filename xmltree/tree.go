// Package xmltree parses XML documents into a navigable element tree and
// supports simple path lookups over it.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrMalformed is returned when a document is not well-formed XML.
var ErrMalformed = errors.New("malformed xml")

// Element is a single node of a parsed document.
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Children []*Element

	text strings.Builder
}

// Parse reads a whole document into memory and returns its root element.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			} else {
				return nil, fmt.Errorf("%w: multiple root elements", ErrMalformed)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("%w: content outside root element", ErrMalformed)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unexpected end of document", ErrMalformed)
	}
	return root, nil
}

// Text returns the character data directly inside the element.
func (e *Element) Text() string {
	return e.text.String()
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when it is missing.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// Find returns the first element matching path, narrowing to the first
// match at every step, or nil.
// An invalid path matches nothing.
func (e *Element) Find(path string) *Element {
	p, err := Compile(path)
	if err != nil {
		return nil
	}
	return p.Find(e)
}

// FindAll returns every element matching path in document order.
func (e *Element) FindAll(path string) []*Element {
	p, err := Compile(path)
	if err != nil {
		return nil
	}
	return p.FindAll(e)
}

// descendants lists every element below e in pre-order.
func (e *Element) descendants() []*Element {
	var out []*Element
	for _, c := range e.Children {
		out = append(out, c)
		out = append(out, c.descendants()...)
	}
	return out
}
