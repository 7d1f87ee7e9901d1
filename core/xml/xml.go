// Package xml wraps xmlquery with the small surface the XML document loader
// needs: parsing, well-formedness checks, relative XPath lookups and typed
// attribute access.
//
// External entities are never fetched. Validate also clears the decoder's
// entity map so internal entity expansion is refused.
package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document is a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node is an element, text or attribute node.
type Node struct {
	node *xmlquery.Node
}

// ValidationResult reports whether a document is well-formed.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError is a single well-formedness error.
type ValidationError struct {
	Line    int
	Column  int
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ParseReader parses XML from r.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Validate checks that data is well-formed XML. The first error stops the
// scan and carries the decoder position.
func Validate(data []byte) ValidationResult {
	result := ValidationResult{Valid: true}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Entity = map[string]string{}

	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, col := decoder.InputPos()
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Line:    line,
				Column:  col,
				Message: err.Error(),
			})
			break
		}
	}

	return result
}

// Root returns the document element.
func (d *Document) Root() *Node {
	if d == nil || d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

func compile(expr string) (*xpath.Expr, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	return e, nil
}

func queryAll(top *xmlquery.Node, expr string) ([]*Node, error) {
	e, err := compile(expr)
	if err != nil {
		return nil, err
	}
	if top == nil {
		return nil, nil
	}
	nodes := xmlquery.QuerySelectorAll(top, e)
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPath evaluates expr relative to n.
func (n *Node) XPath(expr string) ([]*Node, error) {
	if n == nil {
		return queryAll(nil, expr)
	}
	return queryAll(n.node, expr)
}

// Name returns the element name.
func (n *Node) Name() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

// AttrInt parses the named attribute as an integer. A missing attribute
// yields def.
func (n *Node) AttrInt(name string, def int) (int, error) {
	v := strings.TrimSpace(n.Attr(name))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("attribute %s=%q on <%s>: %w", name, v, n.Name(), err)
	}
	return i, nil
}

// AttrBool parses the named attribute as a boolean. A missing attribute
// yields false.
func (n *Node) AttrBool(name string) (bool, error) {
	v := strings.TrimSpace(n.Attr(name))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("attribute %s=%q on <%s>: %w", name, v, n.Name(), err)
	}
	return b, nil
}
