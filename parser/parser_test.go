package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_VarAndReturn(t *testing.T) {
	stmts, err := New(`var x = 1 + 2; return x;`).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	v, ok := stmts[0].(*VarStatement)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
	infix, ok := v.Value.(*InfixExpression)
	require.True(t, ok)
	assert.Equal(t, "+", infix.Operator.Literal)

	ret, ok := stmts[1].(*ReturnStatement)
	require.True(t, ok)
	ident, ok := ret.Value.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)
}

func TestParser_ConstIsStructurallyLikeVar(t *testing.T) {
	stmts, err := New(`const pi = 3.14;`).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	c, ok := stmts[0].(*ConstStatement)
	require.True(t, ok)
	assert.Equal(t, "pi", c.Name)
	lit, ok := c.Value.(*FloatLiteral)
	require.True(t, ok)
	assert.InDelta(t, 3.14, lit.Value, 0.0001)
}

func TestParser_PrecedenceClimbing(t *testing.T) {
	// 1 + 2 * 3 should bind as 1 + (2 * 3): product binds tighter than sum.
	stmts, err := New(`1 + 2 * 3;`).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	es := stmts[0].(*ExpressionStatement)
	outer := es.Value.(*InfixExpression)
	assert.Equal(t, "+", outer.Operator.Literal)
	assert.IsType(t, &IntegerLiteral{}, outer.Left)
	inner := outer.Right.(*InfixExpression)
	assert.Equal(t, "*", inner.Operator.Literal)
}

func TestParser_CompareIsLowestPrecedence(t *testing.T) {
	// 1 + 2 < 3 * 4 should bind as (1 + 2) < (3 * 4).
	stmts, err := New(`1 + 2 < 3 * 4;`).Parse()
	require.NoError(t, err)
	outer := stmts[0].(*ExpressionStatement).Value.(*InfixExpression)
	assert.Equal(t, "<", outer.Operator.Literal)
	assert.IsType(t, &InfixExpression{}, outer.Left)
	assert.IsType(t, &InfixExpression{}, outer.Right)
}

func TestParser_LeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 should bind as (1 - 2) - 3.
	stmts, err := New(`1 - 2 - 3;`).Parse()
	require.NoError(t, err)
	outer := stmts[0].(*ExpressionStatement).Value.(*InfixExpression)
	assert.IsType(t, &InfixExpression{}, outer.Left)
	assert.IsType(t, &IntegerLiteral{}, outer.Right)
}

func TestParser_CallAndIndex(t *testing.T) {
	stmts, err := New(`first(arr[0], len(arr));`).Parse()
	require.NoError(t, err)

	call := stmts[0].(*ExpressionStatement).Value.(*CallExpression)
	assert.Equal(t, "first", call.Name)
	require.Len(t, call.Args, 2)

	idx := call.Args[0].(*IndexExpression)
	assert.Equal(t, "arr", idx.Container.(*Identifier).Name)
	assert.IsType(t, &IntegerLiteral{}, idx.Index)

	inner := call.Args[1].(*CallExpression)
	assert.Equal(t, "len", inner.Name)
}

func TestParser_ArrayAndHashMapLiterals(t *testing.T) {
	stmts, err := New(`var a = [1, 2, 3];`).Parse()
	require.NoError(t, err)
	arr := stmts[0].(*VarStatement).Value.(*ArrayLiteral)
	assert.Len(t, arr.Elements, 3)

	stmts, err = New(`var m = {"a": 1, "b": 2};`).Parse()
	require.NoError(t, err)
	hm := stmts[0].(*VarStatement).Value.(*HashMapLiteral)
	assert.Len(t, hm.Keys, 2)
	assert.Len(t, hm.Values, 2)
}

func TestParser_IfElseExpression(t *testing.T) {
	src := `if (x < 0) { return 0; } else { return 1; }`
	stmts, err := New(src).Parse()
	require.NoError(t, err)

	es := stmts[0].(*ExpressionStatement)
	ifExpr := es.Value.(*IfExpression)
	require.Len(t, ifExpr.Then, 1)
	require.Len(t, ifExpr.Else, 1)
}

func TestParser_IfWithoutElseHasNilElse(t *testing.T) {
	stmts, err := New(`if (x) { return 1; }`).Parse()
	require.NoError(t, err)
	ifExpr := stmts[0].(*ExpressionStatement).Value.(*IfExpression)
	assert.Nil(t, ifExpr.Else)
}

func TestParser_FunctionLiteral(t *testing.T) {
	src := `fn add(a, b) { return a + b; }`
	stmts, err := New(src).Parse()
	require.NoError(t, err)

	fn := stmts[0].(*ExpressionStatement).Value.(*FunctionLiteral)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body, 1)
}

func TestParser_CompoundAssignmentDesugarsToAssignExpression(t *testing.T) {
	stmts, err := New(`x += 1;`).Parse()
	require.NoError(t, err)

	es := stmts[0].(*ExpressionStatement)
	assign := es.Value.(*AssignExpression)
	assert.Equal(t, "x", assign.Name)
	assert.Equal(t, byte('+'), assign.Operator)
	assert.IsType(t, &IntegerLiteral{}, assign.Value)
}

func TestParser_AllCompoundOperators(t *testing.T) {
	cases := map[string]byte{
		"x += 1;": '+',
		"x -= 1;": '-',
		"x *= 1;": '*',
		"x /= 1;": '/',
	}
	for src, want := range cases {
		stmts, err := New(src).Parse()
		require.NoError(t, err, src)
		assign := stmts[0].(*ExpressionStatement).Value.(*AssignExpression)
		assert.Equal(t, want, assign.Operator, src)
	}
}

func TestParser_UnaryOperators(t *testing.T) {
	stmts, err := New(`var x = -5; var y = !true;`).Parse()
	require.NoError(t, err)

	neg := stmts[0].(*VarStatement).Value.(*PrefixExpression)
	assert.Equal(t, "-", neg.Operator.Literal)

	bang := stmts[1].(*VarStatement).Value.(*PrefixExpression)
	assert.Equal(t, "!", bang.Operator.Literal)
}

func TestParser_GroupedExpressionOverridesPrecedence(t *testing.T) {
	// (1 + 2) * 3 should bind the addition first, unlike the ungrouped case.
	stmts, err := New(`(1 + 2) * 3;`).Parse()
	require.NoError(t, err)
	outer := stmts[0].(*ExpressionStatement).Value.(*InfixExpression)
	assert.Equal(t, "*", outer.Operator.Literal)
	assert.IsType(t, &InfixExpression{}, outer.Left)
}

func TestParser_CommentsAreSkippedBetweenStatements(t *testing.T) {
	src := "# leading comment\nvar x = 1;\n# trailing comment"
	stmts, err := New(src).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.IsType(t, &VarStatement{}, stmts[0])
}

func TestParser_EndOfInputErrorOnMissingSemicolon(t *testing.T) {
	_, err := New(`var x = 1`).Parse()
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, EndOfInput, pe.Kind)
}

func TestParser_UnexpectedTokenError(t *testing.T) {
	_, err := New(`var = 1;`).Parse()
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, UnexpectedToken, pe.Kind)
}

func TestParser_ExpectedExpressionError(t *testing.T) {
	_, err := New(`var x = ;`).Parse()
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ExpectedExpression, pe.Kind)
}

func TestParser_WhileAndClassAreNotGrammarProductions(t *testing.T) {
	// while/class are reserved keywords (lexer.WHILE/lexer.CLASS) but have
	// no statement or expression production: using either as the start of
	// an expression is a parse error, not a silent no-op.
	for _, src := range []string{`while (true) { };`, `class Foo { };`} {
		_, err := New(src).Parse()
		require.Error(t, err, src)
	}
}

func TestParser_FullProgram(t *testing.T) {
	src := `
fn classify(n) {
	if (n < 0) {
		return "negative";
	} else {
		return "non-negative";
	}
}

var count = 0;
count += 1;
return classify(count);
`
	stmts, err := New(src).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 4)
	assert.IsType(t, &ExpressionStatement{}, stmts[0])
	assert.IsType(t, &VarStatement{}, stmts[1])
	assert.IsType(t, &ExpressionStatement{}, stmts[2])
	assert.IsType(t, &ReturnStatement{}, stmts[3])
}
