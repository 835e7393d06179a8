/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors
*/

package expr

import (
	"fmt"
	"strconv"
)

// Node is a parsed expression. String renders the tree fully parenthesized,
// which makes precedence and associativity visible.
type Node interface {
	fmt.Stringer
	node()
}

// NumberLit is a numeric literal
type NumberLit struct {
	Value float64
}

// Ident is a named constant such as pi or e
type Ident struct {
	Name string
	Pos  int
}

// BinaryOp applies an arithmetic operator to two operands
type BinaryOp struct {
	Op    TokenType
	Left  Node
	Right Node
}

// UnaryOp is a leading sign
type UnaryOp struct {
	Op   TokenType
	Expr Node
}

// CallExpr applies a unary function. Calls written without parentheses,
// like √16, parse to the same node as sqrt(16).
type CallExpr struct {
	Func string
	Arg  Node
}

func (*NumberLit) node() {}
func (*Ident) node()     {}
func (*BinaryOp) node()  {}
func (*UnaryOp) node()   {}
func (*CallExpr) node()  {}

func (n *NumberLit) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *Ident) String() string {
	return n.Name
}

func (n *BinaryOp) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *UnaryOp) String() string {
	return "(" + n.Op.String() + n.Expr.String() + ")"
}

func (n *CallExpr) String() string {
	return n.Func + "(" + n.Arg.String() + ")"
}
