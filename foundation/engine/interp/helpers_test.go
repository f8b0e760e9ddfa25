package interp

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/lexer"
	"github.com/msto63/teacup/foundation/engine/parser"
)

func testRules(t *testing.T) []lexer.Rule {
	t.Helper()
	lits := func(words ...string) *lexer.Literals {
		l, err := lexer.NewLiterals(words...)
		require.NoError(t, err)
		return l
	}
	kws := func(words ...string) *lexer.Keywords {
		k, err := lexer.NewKeywords(words...)
		require.NoError(t, err)
		return k
	}
	return []lexer.Rule{
		{Kind: lexer.KindNumber, Matcher: lexer.MustPattern(`\d+`)},
		{Kind: lexer.KindOpen, Matcher: lits("(")},
		{Kind: lexer.KindOpen, Matcher: kws("let")},
		{Kind: lexer.KindMiddle, Matcher: kws("in")},
		{Kind: lexer.KindClose, Matcher: lits(")")},
		{Kind: lexer.KindClose, Matcher: kws("end")},
		{Kind: lexer.KindInfix, Matcher: lits(",", ";")},
		{Kind: lexer.KindInfix, Matcher: lexer.MustPattern(`[-+*/<>=|]+`)},
		{Kind: lexer.KindWord, Matcher: lexer.MustPattern(`\w+`)},
	}
}

func testTable() *parser.Table {
	return parser.NewTable().
		Set(parser.KindKey(lexer.KindOpen), parser.Prefix(5)).
		Set(parser.KindKey(lexer.KindMiddle), parser.NonAssoc(5)).
		Set(parser.KindKey(lexer.KindClose), parser.Suffix(5)).
		Set(";", parser.NonAssoc(15)).
		Set(",", parser.NonAssoc(25)).
		Set("=", parser.RightAssoc(35)).
		Set("->", parser.RightAssoc(35)).
		Set("||", parser.LeftAssoc(115)).
		Set("<", parser.NonAssoc(205)).
		Set("+", parser.LeftAssoc(505)).
		Set("-", parser.LeftAssoc(505)).
		Set("prefix:-", parser.Prefix(605)).
		Set("*", parser.LeftAssoc(605)).
		Set("/", parser.LeftAssoc(605)).
		Set(parser.KindKey(lexer.KindWord), parser.NonAssoc(20005)).
		Set(parser.KindKey(lexer.KindNumber), parser.NonAssoc(20005))
}

func parse(t *testing.T, input string) ast.Node {
	t.Helper()
	tokens, err := lexer.Tokenize(input, testRules(t))
	require.NoError(t, err)
	n, err := parser.Parse(lexer.TagFixity(tokens), testTable(), ast.Finalize)
	require.NoError(t, err)
	return n
}

func leafText(n ast.Node) string {
	return n.(*ast.Leaf).Text()
}

func testHandlers() *Handlers {
	return NewHandlers().
		Register("name", ast.OfKind{lexer.KindWord, lexer.KindInfix}, func(ev *Evaluator, n ast.Node, env *Env, _ []ast.Node) (Value, error) {
			return ev.Resolve(env, leafText(n))
		}).
		Register("prefix", ast.OfKind{lexer.KindPrefix}, func(ev *Evaluator, n ast.Node, env *Env, _ []ast.Node) (Value, error) {
			return ev.Resolve(env, "prefix:"+leafText(n))
		}).
		Register("number", ast.OfKind{lexer.KindNumber}, func(ev *Evaluator, n ast.Node, env *Env, _ []ast.Node) (Value, error) {
			return strconv.ParseFloat(leafText(n), 64)
		}).
		Register("operator", ast.MustSigRegexp(`^[E_] [-+*/<>=|]+ E$`), func(ev *Evaluator, n ast.Node, env *Env, _ []ast.Node) (Value, error) {
			return ev.RunCall(n, env)
		}).
		Register("group", ast.Sig("_ ( E ) _"), func(ev *Evaluator, n ast.Node, env *Env, args []ast.Node) (Value, error) {
			return ev.Eval(args[0], env)
		}).
		Register("call", ast.MustSigRegexp(`^E \( [E_] \) _$`), func(ev *Evaluator, n ast.Node, env *Env, _ []ast.Node) (Value, error) {
			return ev.RunCall(n, env)
		}).
		Register("sequence", ast.MustSigRegexp(`[,;]`), func(ev *Evaluator, n ast.Node, env *Env, args []ast.Node) (Value, error) {
			return ev.EvalSequence(args, env)
		}).
		Register("lambda", ast.Sig("E -> E"), func(ev *Evaluator, n ast.Node, env *Env, args []ast.Node) (Value, error) {
			return BuildFunction(ast.FlattenList(ast.UnwrapParens(args[0])), args[1], env)
		}).
		Register("let", ast.Sig("_ let E in E end _"), func(ev *Evaluator, n ast.Node, env *Env, args []ast.Node) (Value, error) {
			scope, err := ev.BindDeclarations(ast.FlattenList(args[0]), env)
			if err != nil {
				return nil, err
			}
			return ev.Eval(args[1], scope)
		})
}

func num2(fn func(a, b float64) Value) *Builtin {
	return NewBuiltin("op", func(_ *Evaluator, args []Value) (Value, error) {
		a, _ := Arg(args, 0).(float64)
		b, _ := Arg(args, 1).(float64)
		return fn(a, b), nil
	})
}

func testRoot() *Env {
	return NewRootEnv(map[string]Value{
		"true":  true,
		"false": false,
		"+":     num2(func(a, b float64) Value { return a + b }),
		"-":     num2(func(a, b float64) Value { return a - b }),
		"*":     num2(func(a, b float64) Value { return a * b }),
		"<":     num2(func(a, b float64) Value { return a < b }),
		"prefix:-": NewBuiltin("neg", func(_ *Evaluator, args []Value) (Value, error) {
			return -args[0].(float64), nil
		}),
		"||": NewLazyBuiltin("or", func(_ *Evaluator, args []Value) (Value, error) {
			a, err := Force(args[0])
			if err != nil || Truthy(a) {
				return a, err
			}
			return Force(args[1])
		}),
	})
}

func run(t *testing.T, input string, env *Env) (Value, error) {
	t.Helper()
	return New(testHandlers(), env, Options{}).Evaluate(parse(t, input))
}
