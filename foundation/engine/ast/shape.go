// File: shape.go
// Title: Node Shapes
// Description: The closed set of structural shapes and the classifier that
//              assigns them to signatures while nodes are built.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-06
// Modified: 2025-06-06
//
// Change History:
// - 2025-06-06 v0.1.0: Initial implementation

package ast

// Shape is the structural category of a node
type Shape int

const (
	// ShapeOther is any compound no classifier rule claims
	ShapeOther Shape = iota
	ShapeAtom
	ShapeOperator
	ShapeGroup
	ShapeBlock
	ShapeCall
	ShapeList
	ShapeIndex
	ShapeField
	ShapeConditional
	ShapeSequence
	ShapeLambda
	ShapeBinding
	ShapeIteration
)

var shapeNames = map[Shape]string{
	ShapeOther:       "other",
	ShapeAtom:        "atom",
	ShapeOperator:    "operator",
	ShapeGroup:       "group",
	ShapeBlock:       "block",
	ShapeCall:        "call",
	ShapeList:        "list",
	ShapeIndex:       "index",
	ShapeField:       "field",
	ShapeConditional: "conditional",
	ShapeSequence:    "sequence",
	ShapeLambda:      "lambda",
	ShapeBinding:     "binding",
	ShapeIteration:   "iteration",
}

// String returns the shape name
func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseShape returns the shape with the given name
func ParseShape(name string) (Shape, bool) {
	for s, n := range shapeNames {
		if n == name {
			return s, true
		}
	}
	return ShapeOther, false
}

type classRule struct {
	pattern SignaturePattern
	shape   Shape
}

// Classifier assigns shapes to compound signatures. Rules are consulted
// from the most recently added to the first, so a specific rule added after
// a broad one overrides it.
type Classifier struct {
	rules []classRule
}

// NewClassifier creates an empty classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Add appends a rule and returns the classifier for chaining
func (c *Classifier) Add(p SignaturePattern, shape Shape) *Classifier {
	c.rules = append(c.rules, classRule{pattern: p, shape: shape})
	return c
}

// Classify returns the shape of the last added rule matching signature, or
// ShapeOther
func (c *Classifier) Classify(signature string) Shape {
	if c == nil {
		return ShapeOther
	}
	for i := len(c.rules) - 1; i >= 0; i-- {
		if c.rules[i].pattern.MatchSignature(signature) {
			return c.rules[i].shape
		}
	}
	return ShapeOther
}
