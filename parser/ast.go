package parser

import "github.com/axel-lang/axel/lexer"

// Statement is implemented by every top-level construct the parser can
// produce: declarations, returns, and bare expressions (spec.md §3).
type Statement interface {
	stmtNode()
}

// Expression is implemented by every node that produces a Value when
// evaluated.
type Expression interface {
	exprNode()
}

// VarStatement declares a mutable binding: `var name = value;`.
type VarStatement struct {
	Name  string
	Value Expression
}

func (s *VarStatement) stmtNode() {}

// ConstStatement declares a binding that the evaluator treats identically
// to VarStatement — spec.md §4.3.1 does not enforce immutability.
type ConstStatement struct {
	Name  string
	Value Expression
}

func (s *ConstStatement) stmtNode() {}

// ReturnStatement evaluates its Value and, inside a block, stops the
// remaining statements of that block from running (spec.md §4.3.4).
type ReturnStatement struct {
	Value Expression
}

func (s *ReturnStatement) stmtNode() {}

// ExpressionStatement is a bare expression used as a statement; its value
// is the statement's result.
type ExpressionStatement struct {
	Value Expression
}

func (s *ExpressionStatement) stmtNode() {}

// IntegerLiteral is an integer constant, e.g. 42.
type IntegerLiteral struct {
	Value int32
}

func (e *IntegerLiteral) exprNode() {}

// FloatLiteral is a floating-point constant, e.g. 3.14.
type FloatLiteral struct {
	Value float32
}

func (e *FloatLiteral) exprNode() {}

// StringLiteral is a string constant.
type StringLiteral struct {
	Value string
}

func (e *StringLiteral) exprNode() {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Value bool
}

func (e *BooleanLiteral) exprNode() {}

// Identifier is a bare name reference, resolved against the environment at
// evaluation time.
type Identifier struct {
	Name string
}

func (e *Identifier) exprNode() {}

// ArrayLiteral is a `[e1, e2, ...]` expression.
type ArrayLiteral struct {
	Elements []Expression
}

func (e *ArrayLiteral) exprNode() {}

// HashMapLiteral is a `{k1: v1, k2: v2, ...}` expression. spec.md §4.3.2
// does not require this to be implemented; the evaluator rejects it with an
// UnknownOperator error.
type HashMapLiteral struct {
	Keys   []Expression
	Values []Expression
}

func (e *HashMapLiteral) exprNode() {}

// IndexExpression is `container[index]`.
type IndexExpression struct {
	Container Expression
	Index     Expression
}

func (e *IndexExpression) exprNode() {}

// IfExpression is `if (cond) { then } [else { else }]`. Absence of an else
// branch is represented by a nil Else slice (distinct from an empty one).
type IfExpression struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (e *IfExpression) exprNode() {}

// FunctionLiteral is `fn name(params) { body }`. Declaring one is itself an
// expression: it both binds `name` in the environment and evaluates to the
// function value (spec.md §4.3.2).
type FunctionLiteral struct {
	Name   string
	Params []string
	Body   []Statement
}

func (e *FunctionLiteral) exprNode() {}

// CallExpression is `name(args...)`, where name may resolve to a
// user-defined Function or fall back to a built-in (spec.md §4.3.2).
type CallExpression struct {
	Name string
	Args []Expression
}

func (e *CallExpression) exprNode() {}

// InfixExpression is `left OP right` for any binary operator.
type InfixExpression struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

func (e *InfixExpression) exprNode() {}

// PrefixExpression is `OP right` for a unary operator (`-` or `!`).
type PrefixExpression struct {
	Operator lexer.Token
	Right    Expression
}

func (e *PrefixExpression) exprNode() {}

// AssignExpression rebinds an existing name: `name OP= value`. The parser
// only ever produces this from compound-assignment syntax (spec.md §4.2.6,
// §9); Operator is the single-character operator to apply before rebinding
// ('+','-','*','/'), and Value is the already-parsed right-hand side.
type AssignExpression struct {
	Name     string
	Operator byte
	Value    Expression
}

func (e *AssignExpression) exprNode() {}
