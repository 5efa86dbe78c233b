// Package filter turns structured filter selections into deterministic,
// parameterized query conditions. Conditions are built as a typed tree
// and serialized once, at the boundary, either to SQL text with `?`
// placeholders or to the nested filterTree wire format of the listing
// contract. Nothing in this package touches string concatenation of
// user values.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Op is a leaf comparison operator. The set matches what the listing
// contract accepts.
type Op string

const (
	OpEq   Op = "eq"
	OpNe   Op = "ne"
	OpLt   Op = "lt"
	OpGt   Op = "gt"
	OpLe   Op = "le"
	OpGe   Op = "ge"
	OpIn   Op = "in"
	OpLike Op = "like"
)

var sqlOps = map[Op]string{
	OpEq:   "=",
	OpNe:   "<>",
	OpLt:   "<",
	OpGt:   ">",
	OpLe:   "<=",
	OpGe:   ">=",
	OpLike: "LIKE",
}

// Node is one node of a condition tree: a Leaf comparison or an And/Or
// composite.
type Node interface {
	// appendSQL writes the node's SQL into b and appends its parameter
	// values, in order, to params.
	appendSQL(b *strings.Builder, params *[]any)
	json.Marshaler
}

// Leaf is an atomic condition on one field.
//
// A Leaf with Op ne/eq and a nil Value renders as IS NOT NULL / IS NULL,
// which is how the unknown-dealer exclusion is expressed.
type Leaf struct {
	Field string
	Op    Op
	Value any
}

func (l Leaf) appendSQL(b *strings.Builder, params *[]any) {
	if l.Value == nil && (l.Op == OpEq || l.Op == OpNe) {
		if l.Op == OpEq {
			fmt.Fprintf(b, "%s IS NULL", l.Field)
		} else {
			fmt.Fprintf(b, "%s IS NOT NULL", l.Field)
		}
		return
	}
	if l.Op == OpIn {
		values, _ := l.Value.([]string)
		b.WriteString(l.Field)
		b.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("?")
			*params = append(*params, v)
		}
		b.WriteString(")")
		return
	}
	fmt.Fprintf(b, "%s %s ?", l.Field, sqlOps[l.Op])
	*params = append(*params, l.Value)
}

// MarshalJSON renders the leaf in the listing contract's wire shape.
func (l Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"field": l.Field,
		"op":    string(l.Op),
		"value": l.Value,
	})
}

// And is a conjunction of child nodes.
type And struct {
	Children []Node
}

func (a And) appendSQL(b *strings.Builder, params *[]any) {
	appendComposite(b, params, a.Children, " AND ")
}

func (a And) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"and": a.Children})
}

// Or is a disjunction of child nodes.
type Or struct {
	Children []Node
}

func (o Or) appendSQL(b *strings.Builder, params *[]any) {
	appendComposite(b, params, o.Children, " OR ")
}

func (o Or) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"or": o.Children})
}

func appendComposite(b *strings.Builder, params *[]any, children []Node, sep string) {
	if len(children) == 0 {
		// An empty composite matches everything.
		b.WriteString("1=1")
		return
	}
	b.WriteString("(")
	for i, c := range children {
		if i > 0 {
			b.WriteString(sep)
		}
		c.appendSQL(b, params)
	}
	b.WriteString(")")
}

// SQL serializes a node to a WHERE-clause fragment with `?` placeholders
// and the parameter values in placeholder order.
func SQL(n Node) (string, []any) {
	var b strings.Builder
	params := make([]any, 0, 8)
	n.appendSQL(&b, &params)
	return b.String(), params
}
