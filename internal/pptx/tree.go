// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Node is one value in an attribute-free XML tree. It is exactly one of
// Text, List, or Keyed.
type Node interface {
	node()
}

// Text is the character content of a leaf element. Elements with neither
// children nor text are Text("").
type Text string

// List holds sibling elements that share a name, in document order.
type List []Node

// Field is one named child of a Keyed node.
type Field struct {
	Name  string
	Value Node
}

// Keyed is an element with child elements. Fields appear in the order their
// name first occurs; repeated names are gathered into a List at that position.
// Mixed text content is kept under the "#text" field.
type Keyed []Field

func (Text) node()  {}
func (List) node()  {}
func (Keyed) node() {}

// TextField is the field name used for text mixed in with child elements.
const TextField = "#text"

// Get returns the value of the first field called name.
func (k Keyed) Get(name string) (Node, bool) {
	for _, f := range k {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Lookup follows a path of field names from n. It fails when an intermediate
// node is not Keyed or a name is missing.
func Lookup(n Node, path ...string) (Node, bool) {
	cur := n
	for _, name := range path {
		k, ok := cur.(Keyed)
		if !ok {
			return nil, false
		}
		if cur, ok = k.Get(name); !ok {
			return nil, false
		}
	}
	return cur, true
}

// Items returns n as a slice: the elements of a List, or n itself.
func Items(n Node) []Node {
	if l, ok := n.(List); ok {
		return l
	}
	if n == nil {
		return nil
	}
	return []Node{n}
}

// ParseTree parses an XML document into a Node tree. The returned tree is a
// Keyed node holding the document element.
func ParseTree(data []byte) (Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return fromXML(doc), nil
}

func fromXML(n *xmlquery.Node) Node {
	var (
		fields   Keyed
		index    = map[string]int{}
		text     strings.Builder
		hasChild bool
	)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			hasChild = true
			name := qualifiedName(c)
			v := fromXML(c)
			i, seen := index[name]
			if !seen {
				index[name] = len(fields)
				fields = append(fields, Field{Name: name, Value: v})
				continue
			}
			// fromXML never returns a List, so a List here is a grouping.
			if l, ok := fields[i].Value.(List); ok {
				fields[i].Value = append(l, v)
			} else {
				fields[i].Value = List{fields[i].Value, v}
			}
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		}
	}

	if !hasChild {
		return Text(text.String())
	}
	if t := text.String(); strings.TrimSpace(t) != "" {
		fields = append(fields, Field{Name: TextField, Value: Text(t)})
	}
	return fields
}

func qualifiedName(n *xmlquery.Node) string {
	if n.Prefix == "" {
		return n.Data
	}
	return n.Prefix + ":" + n.Data
}
