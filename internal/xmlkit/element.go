package xmlkit

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ParseError indicates malformed XML. It is always fatal for the
// document it came from and is never downgraded to an unknown type.
type ParseError struct {
	// Err is the underlying decoder error.
	Err error
}

func (e *ParseError) Error() string {
	return "xml parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Element is one node of a parsed XML document.
type Element struct {
	// Tag is the element's local name.
	Tag string

	// Attrs holds the element's attributes by local name.
	Attrs map[string]string

	// Text is the element's concatenated direct character data.
	Text string

	// Children are the element's child elements, in document order.
	Children []*Element
}

// Parse builds an element tree from an XML document. The document must
// declare a single well-formed root element; anything else returns a
// *ParseError.
func Parse(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local}
			if len(t.Attr) > 0 {
				el.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &ParseError{Err: errors.New("multiple root elements")}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, &ParseError{Err: errors.New("no root element")}
	}
	if len(stack) > 0 {
		return nil, &ParseError{Err: errors.New("unclosed element: " + stack[len(stack)-1].Tag)}
	}
	return root, nil
}

// RootTag reads only the first start element of a document and returns
// its local name. Detection inspects nothing beyond the root tag.
func RootTag(text string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", &ParseError{Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// Find returns the first direct child with the given tag, or nil.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns every direct child with the given tag, in order.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// FindText returns the text of the first direct child with the given
// tag, or the empty string when the child is absent.
func (e *Element) FindText(tag string) string {
	if c := e.Find(tag); c != nil {
		return c.Text
	}
	return ""
}

// Has reports whether a direct child with the given tag is present.
// Inclusion of optional fields keys off element presence, not the
// truthiness of its text: a present element with text "0" counts.
func (e *Element) Has(tag string) bool {
	return e.Find(tag) != nil
}

// Descendants returns every element with the given tag at any depth
// below e, depth-first in document order.
func (e *Element) Descendants(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, c.Descendants(tag)...)
	}
	return out
}

// Attr returns the named attribute's value, or the empty string.
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}
