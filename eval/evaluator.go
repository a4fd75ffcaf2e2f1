// Package eval walks the AST the parser package produces and interprets
// it against a single live env.Environment.
package eval

import (
	"io"
	"os"

	"github.com/axel-lang/axel/env"
	"github.com/axel-lang/axel/objects"
	"github.com/axel-lang/axel/parser"
)

// Evaluator owns the one Environment a running Axel program has. Per
// spec.md §5, exactly one Environment exists per Evaluator and no other
// component may mutate it; statements fed to Eval in sequence see each
// other's bindings, which is what makes a REPL session stateful.
type Evaluator struct {
	Env    *env.Environment
	Writer io.Writer // destination for the print built-in; defaults to os.Stdout
}

// New returns an Evaluator with a fresh, empty Environment.
func New() *Evaluator {
	return &Evaluator{Env: env.New(), Writer: os.Stdout}
}

// returnValue is an internal control-flow signal, never surfaced outside
// this package. It wraps the value a Return statement produces so that
// evalBlock can short-circuit through any number of enclosing non-Return
// statements — including an if-expression used as a statement — until the
// signal reaches the function-call boundary in callFunction, where it is
// unwrapped back into a plain Value.
type returnValue struct {
	value objects.Value
}

func (r *returnValue) Type() objects.Type { return "return" }
func (r *returnValue) Inspect() string    { return r.value.Inspect() }

func unwrapReturn(v objects.Value) objects.Value {
	if rv, ok := v.(*returnValue); ok {
		return rv.value
	}
	return v
}

// Eval runs a single top-level statement against the Evaluator's
// Environment and returns the Value it produces.
func (e *Evaluator) Eval(stmt parser.Statement) (objects.Value, error) {
	v, err := e.evalStatement(stmt)
	if err != nil {
		return nil, err
	}
	return unwrapReturn(v), nil
}

// EvalProgram runs a sequence of statements in order, returning the value
// of the last one (or an error from the first failing statement).
func (e *Evaluator) EvalProgram(stmts []parser.Statement) (objects.Value, error) {
	var result objects.Value = objects.FALSE
	for _, stmt := range stmts {
		v, err := e.evalStatement(stmt)
		if err != nil {
			return nil, err
		}
		result = unwrapReturn(v)
	}
	return result, nil
}

// evalStatement implements spec.md §4.3.1.
func (e *Evaluator) evalStatement(stmt parser.Statement) (objects.Value, error) {
	switch s := stmt.(type) {
	case *parser.VarStatement:
		v, err := e.evalExpression(s.Value)
		if err != nil {
			return nil, err
		}
		e.Env.Set(s.Name, v)
		return v, nil
	case *parser.ConstStatement:
		// Evaluated identically to VarStatement: spec.md §4.3.1 does not
		// enforce immutability on const bindings.
		v, err := e.evalExpression(s.Value)
		if err != nil {
			return nil, err
		}
		e.Env.Set(s.Name, v)
		return v, nil
	case *parser.ReturnStatement:
		v, err := e.evalExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return &returnValue{value: v}, nil
	case *parser.ExpressionStatement:
		return e.evalExpression(s.Value)
	default:
		return nil, newEvalError(UnknownOperator, "unrecognized statement %T", stmt)
	}
}

// evalExpression implements spec.md §4.3.2.
func (e *Evaluator) evalExpression(expr parser.Expression) (objects.Value, error) {
	switch x := expr.(type) {
	case *parser.IntegerLiteral:
		return &objects.Integer{Value: x.Value}, nil
	case *parser.FloatLiteral:
		return &objects.Float{Value: x.Value}, nil
	case *parser.StringLiteral:
		return &objects.String{Value: x.Value}, nil
	case *parser.BooleanLiteral:
		return objects.Bool(x.Value), nil
	case *parser.Identifier:
		return e.evalIdentifier(x)
	case *parser.PrefixExpression:
		return e.evalPrefix(x)
	case *parser.InfixExpression:
		return e.evalInfix(x)
	case *parser.IfExpression:
		return e.evalIf(x)
	case *parser.FunctionLiteral:
		return e.evalFunctionLiteral(x)
	case *parser.CallExpression:
		return e.evalCall(x)
	case *parser.ArrayLiteral:
		return e.evalArrayLiteral(x)
	case *parser.IndexExpression:
		return e.evalIndex(x)
	case *parser.HashMapLiteral:
		// spec.md §4.3.2: not required by any observed test.
		return nil, newEvalError(UnknownOperator, "hashmap literals are not supported")
	case *parser.AssignExpression:
		return e.evalAssign(x)
	default:
		return nil, newEvalError(UnknownOperator, "unrecognized expression %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(id *parser.Identifier) (objects.Value, error) {
	v, ok := e.Env.Get(id.Name)
	if !ok {
		return nil, newEvalError(IdentifierNotFound, "identifier not found: %s", id.Name)
	}
	return v, nil
}

// evalPrefix implements spec.md §4.3.2's two prefix operators. Unlike the
// source this is distilled from, `!` negates its operand rather than
// returning it unchanged — see spec.md §9's Open Question, resolved here
// in favor of the corrected behavior.
func (e *Evaluator) evalPrefix(p *parser.PrefixExpression) (objects.Value, error) {
	right, err := e.evalExpression(p.Right)
	if err != nil {
		return nil, err
	}
	switch p.Operator.Literal {
	case "!":
		b, ok := right.(*objects.Boolean)
		if !ok {
			return nil, newEvalError(OperandTypeMismatch, "'!' requires a bool, got %s", right.Type())
		}
		return objects.Bool(!b.Value), nil
	case "-":
		n, ok := right.(*objects.Integer)
		if !ok {
			return nil, newEvalError(OperandTypeMismatch, "unary '-' requires an int, got %s", right.Type())
		}
		return &objects.Integer{Value: -n.Value}, nil
	default:
		return nil, newEvalError(UnknownOperator, "unknown prefix operator %q", p.Operator.Literal)
	}
}

// evalInfix implements spec.md §4.3.2's InfixOp dispatch table. Both
// operands are evaluated eagerly, left then right (spec.md §5).
func (e *Evaluator) evalInfix(inf *parser.InfixExpression) (objects.Value, error) {
	left, err := e.evalExpression(inf.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(inf.Right)
	if err != nil {
		return nil, err
	}
	op := inf.Operator.Literal

	if l, ok := left.(*objects.Integer); ok {
		if r, ok := right.(*objects.Integer); ok {
			return evalIntegerInfix(op, l.Value, r.Value)
		}
		return nil, newEvalError(OperandTypeMismatch, "%s %s %s: mismatched operand types", left.Type(), op, right.Type())
	}
	if l, ok := left.(*objects.String); ok {
		if r, ok := right.(*objects.String); ok {
			if op == "+" {
				return &objects.String{Value: l.Value + r.Value}, nil
			}
			return nil, newEvalError(UnknownOperator, "unsupported string operator %q", op)
		}
		return nil, newEvalError(OperandTypeMismatch, "%s %s %s: mismatched operand types", left.Type(), op, right.Type())
	}

	return nil, newEvalError(OperandTypeMismatch, "unsupported operand types for %q: %s, %s", op, left.Type(), right.Type())
}

func evalIntegerInfix(op string, l, r int32) (objects.Value, error) {
	switch op {
	case "+":
		return &objects.Integer{Value: l + r}, nil
	case "-":
		return &objects.Integer{Value: l - r}, nil
	case "*":
		return &objects.Integer{Value: l * r}, nil
	case "/":
		// spec.md §8, law 4: integer division, truncating toward zero, and
		// division by zero is not trapped here — it produces the host's
		// native integer-division behavior (a runtime panic in Go).
		return &objects.Integer{Value: l / r}, nil
	case "<":
		return objects.Bool(l < r), nil
	case ">":
		return objects.Bool(l > r), nil
	case "<=":
		return objects.Bool(l <= r), nil
	case ">=":
		return objects.Bool(l >= r), nil
	case "==":
		return objects.Bool(l == r), nil
	case "!=":
		return objects.Bool(l != r), nil
	default:
		return nil, newEvalError(UnknownOperator, "unknown integer operator %q", op)
	}
}

// evalIf implements spec.md §4.3.2's IfExpr rule, including the deliberate
// "no else → Boolean(false)" convention documented in §9.
func (e *Evaluator) evalIf(ifExpr *parser.IfExpression) (objects.Value, error) {
	cond, err := e.evalExpression(ifExpr.Condition)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*objects.Boolean)
	if !ok {
		return nil, newEvalError(NonBooleanCondition, "if condition did not evaluate to a bool, got %s", cond.Type())
	}
	if b.Value {
		return e.evalBlock(ifExpr.Then)
	}
	if ifExpr.Else == nil {
		return objects.FALSE, nil
	}
	return e.evalBlock(ifExpr.Else)
}

// evalBlock implements spec.md §4.3.4: iterate statements in order,
// stopping early on a Return and yielding its value; otherwise yield the
// value of the last statement. A Return nested arbitrarily deep inside an
// if-expression-statement still carries its returnValue signal out of that
// statement's own evaluation, so the check below catches it exactly the
// same as a direct top-level Return — it propagates, unwrapped only once
// the signal reaches callFunction, all the way out to the enclosing
// function call.
func (e *Evaluator) evalBlock(stmts []parser.Statement) (objects.Value, error) {
	var result objects.Value = objects.FALSE
	for _, stmt := range stmts {
		v, err := e.evalStatement(stmt)
		if err != nil {
			return nil, err
		}
		if _, ok := v.(*returnValue); ok {
			return v, nil
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalFunctionLiteral(fn *parser.FunctionLiteral) (objects.Value, error) {
	function := &objects.Function{Name: fn.Name, Params: fn.Params, Body: fn.Body}
	e.Env.Set(fn.Name, function)
	return function, nil
}

func (e *Evaluator) evalArrayLiteral(arr *parser.ArrayLiteral) (objects.Value, error) {
	elements := make([]objects.Value, len(arr.Elements))
	for i, el := range arr.Elements {
		v, err := e.evalExpression(el)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return &objects.Array{Elements: elements}, nil
}

func (e *Evaluator) evalIndex(idx *parser.IndexExpression) (objects.Value, error) {
	container, err := e.evalExpression(idx.Container)
	if err != nil {
		return nil, err
	}
	index, err := e.evalExpression(idx.Index)
	if err != nil {
		return nil, err
	}
	arr, ok := container.(*objects.Array)
	if !ok {
		return nil, newEvalError(OperandTypeMismatch, "cannot index into %s", container.Type())
	}
	i, ok := index.(*objects.Integer)
	if !ok {
		return nil, newEvalError(OperandTypeMismatch, "array index must be an int, got %s", index.Type())
	}
	// Out-of-range is a host-trapped fault, not caught here (spec.md §4.3.2).
	return arr.Elements[i.Value], nil
}

// evalAssign implements spec.md §4.2.6/§9: compound assignment desugars to
// `name = name OP value`, re-binding name in the (single, flat) Environment.
func (e *Evaluator) evalAssign(a *parser.AssignExpression) (objects.Value, error) {
	current, ok := e.Env.Get(a.Name)
	if !ok {
		return nil, newEvalError(IdentifierNotFound, "identifier not found: %s", a.Name)
	}
	rhs, err := e.evalExpression(a.Value)
	if err != nil {
		return nil, err
	}

	l, ok := current.(*objects.Integer)
	if !ok {
		return nil, newEvalError(OperandTypeMismatch, "compound assignment requires an int, got %s", current.Type())
	}
	r, ok := rhs.(*objects.Integer)
	if !ok {
		return nil, newEvalError(OperandTypeMismatch, "compound assignment requires an int, got %s", rhs.Type())
	}

	result, err := evalIntegerInfix(string(a.Operator), l.Value, r.Value)
	if err != nil {
		return nil, err
	}
	e.Env.Set(a.Name, result)
	return result, nil
}

// evalCall implements spec.md §4.3.2's Call rule and §4.3.3's critical
// function-call scoping contract.
func (e *Evaluator) evalCall(call *parser.CallExpression) (objects.Value, error) {
	args := make([]objects.Value, len(call.Args))
	for i, a := range call.Args {
		v, err := e.evalExpression(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	resolved, ok := e.Env.Get(call.Name)
	if !ok {
		return e.callBuiltin(call.Name, args)
	}

	fn, ok := resolved.(*objects.Function)
	if !ok {
		return nil, newEvalError(NotCallable, "%s is not callable", call.Name)
	}
	return e.callFunction(fn, args)
}

// callFunction implements spec.md §4.3.3 exactly: write each formal
// parameter into the (single, global) Environment, run the body, then
// remove each formal parameter — no snapshot is saved and none is
// restored, which is what gives Axel its dynamic-scoping-with-shadowing
// behavior.
func (e *Evaluator) callFunction(fn *objects.Function, args []objects.Value) (objects.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, newEvalError(BuiltinArgs, "%s: expected %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	for i, param := range fn.Params {
		e.Env.Set(param, args[i])
	}

	result, err := e.evalBlock(fn.Body)

	for _, param := range fn.Params {
		e.Env.Delete(param)
	}

	if err != nil {
		return nil, err
	}
	return unwrapReturn(result), nil
}

func (e *Evaluator) writer() io.Writer {
	if e.Writer != nil {
		return e.Writer
	}
	return os.Stdout
}
