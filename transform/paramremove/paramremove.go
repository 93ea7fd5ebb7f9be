// Package paramremove implements structural removal of parameter
// expressions from a query tree: every subtree that can only evaluate
// differently depending on a bound parameter value is pruned, and the
// clauses that held it are emptied or simplified so the remaining query
// stays syntactically valid and, where possible, semantically permissive.
//
// This mirrors the approach the teacher's ast/pool.go takes to a different
// cross-cutting concern (a type switch over every node kind in one file).
// The walk rewrites the tree in place: surviving nodes are the caller's own
// nodes with their child fields reassigned, and a removed subtree is
// replaced by nothing. No copy of the input is made.
package paramremove

import (
	"github.com/pgsqlast/pgsqlast/ast"
	"github.com/pgsqlast/pgsqlast/pgerror"
	"github.com/pgsqlast/pgsqlast/token"
)

// Remove prunes every parameter-dependent subtree of n per the rules below
// and returns the result, or a *pgerror.Error (EmptySelect) if doing so
// would leave a SELECT with no columns. The pruning modifies n's nodes in
// place rather than copying them; on an EmptySelect error, n's WHERE and
// HAVING may already have been rewritten.
//
// Rules:
//  1. AND: if exactly one side contains a parameter, that side is dropped
//     and the other is kept (a constant-true operand would not change the
//     result set if conjoined, so dropping is the safe direction: it keeps
//     more rows than the original, never fewer).
//  2. OR: if either side contains a parameter, the whole OR is dropped
//     (keeping just one side of an OR would return fewer rows than the
//     original could, for some parameter values).
//  3. Any other binary operator: dropped whole if either side has a
//     parameter.
//  4. Unary, paren, cast, array, and function-argument expressions: dropped
//     whole if the operand/argument has a parameter.
//  5. BETWEEN: dropped whole if the expr, low, or high bound has one.
//  6. CASE: WHEN arms whose condition or result has a parameter are
//     removed from the arm list, and a parameterized ELSE is removed; the
//     whole CASE is dropped if the operand has one, or if no arm and no
//     ELSE remain.
//  7. A clause that becomes empty after rule application (WHERE, HAVING)
//     is set to nil rather than left as a dangling AND/OR operand.
//  8. If every SELECT column is removed, Remove returns EMPTY_SELECT
//     instead of producing a columnless SELECT.
func Remove[T ast.Node](n T) (T, error) {
	out, _, err := removeNode(any(n).(ast.Node))
	if err != nil {
		var zero T
		return zero, err
	}
	if out == nil {
		var zero T
		return zero, nil
	}
	return out.(T), nil
}

// removeNode returns the rewritten node (nil if it was dropped entirely),
// whether it was dropped (an AND that kept one side, or a CASE that lost
// only arms or its ELSE, reports false), and an error.
func removeNode(n ast.Node) (ast.Node, bool, error) {
	if n == nil || isNilExpr(n) {
		return n, false, nil
	}

	switch v := n.(type) {
	case *ast.Param:
		return nil, true, nil

	case *ast.SelectStmt:
		return removeSelect(v)

	case *ast.BinaryExpr:
		return removeBinary(v)

	case *ast.UnaryExpr:
		operand, hasParam, err := removeNode(v.Operand)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			return nil, true, nil
		}
		v.Operand = operand.(ast.Expr)
		return v, false, nil

	case *ast.ParenExpr:
		inner, hasParam, err := removeNode(v.Expr)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			return nil, true, nil
		}
		v.Expr = inner.(ast.Expr)
		return v, false, nil

	case *ast.CastExpr:
		inner, hasParam, err := removeNode(v.Expr)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			return nil, true, nil
		}
		v.Expr = inner.(ast.Expr)
		return v, false, nil

	case *ast.ArrayExpr:
		return removeExprList(v, v.Elements, func(es []ast.Expr) { v.Elements = es })

	case *ast.FuncExpr:
		rebuilt, anyParam, err := removeExprSlice(v.Args)
		if err != nil {
			return nil, false, err
		}
		if anyParam {
			return nil, true, nil
		}
		v.Args = rebuilt
		return v, false, nil

	case *ast.BetweenExpr:
		e1, p1, err := removeNode(v.Expr)
		if err != nil {
			return nil, false, err
		}
		e2, p2, err := removeNode(v.Low)
		if err != nil {
			return nil, false, err
		}
		e3, p3, err := removeNode(v.High)
		if err != nil {
			return nil, false, err
		}
		if p1 || p2 || p3 {
			return nil, true, nil
		}
		v.Expr, v.Low, v.High = e1.(ast.Expr), e2.(ast.Expr), e3.(ast.Expr)
		return v, false, nil

	case *ast.CaseExpr:
		return removeCase(v)

	case *ast.InExpr:
		inner, hasParam, err := removeNode(v.Expr)
		if err != nil {
			return nil, false, err
		}
		vals := make([]ast.Expr, 0, len(v.Values))
		for _, val := range v.Values {
			rebuilt, p, err := removeNode(val)
			if err != nil {
				return nil, false, err
			}
			hasParam = hasParam || p
			if !p {
				vals = append(vals, rebuilt.(ast.Expr))
			}
		}
		if hasParam {
			return nil, true, nil
		}
		v.Expr, v.Values = inner.(ast.Expr), vals
		return v, false, nil

	case *ast.LikeExpr:
		e1, p1, err := removeNode(v.Expr)
		if err != nil {
			return nil, false, err
		}
		e2, p2, err := removeNode(v.Pattern)
		if err != nil {
			return nil, false, err
		}
		if p1 || p2 {
			return nil, true, nil
		}
		v.Expr, v.Pattern = e1.(ast.Expr), e2.(ast.Expr)
		return v, false, nil

	case *ast.IsExpr:
		inner, hasParam, err := removeNode(v.Expr)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			return nil, true, nil
		}
		v.Expr = inner.(ast.Expr)
		return v, false, nil

	case *ast.AliasedExpr:
		inner, hasParam, err := removeNode(v.Expr)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			return nil, true, nil
		}
		v.Expr = inner.(ast.Expr)
		return v, false, nil

	default:
		// Leaf or not-yet-specialized node kinds: never themselves a
		// parameter and have no parameter-bearing children this pass
		// needs to prune (ColName, Literal, StarExpr, TableName, ...).
		return n, false, nil
	}
}

func isNilExpr(n ast.Node) bool {
	e, ok := n.(ast.Expr)
	if !ok {
		return false
	}
	switch v := e.(type) {
	case *ast.Param:
		return v == nil
	default:
		return false
	}
}

func removeExprSlice(in []ast.Expr) ([]ast.Expr, bool, error) {
	out := make([]ast.Expr, 0, len(in))
	anyParam := false
	for _, e := range in {
		rebuilt, hasParam, err := removeNode(e)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			anyParam = true
			continue
		}
		out = append(out, rebuilt.(ast.Expr))
	}
	return out, anyParam, nil
}

// removeExprList rebuilds a fixed-shape list (ArrayExpr.Elements) where a
// single parameterized element drops the whole expression, per rule 4,
// rather than just that element.
func removeExprList(owner ast.Expr, in []ast.Expr, set func([]ast.Expr)) (ast.Node, bool, error) {
	out := make([]ast.Expr, 0, len(in))
	for _, e := range in {
		rebuilt, hasParam, err := removeNode(e)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			return nil, true, nil
		}
		out = append(out, rebuilt.(ast.Expr))
	}
	set(out)
	return owner, false, nil
}

func removeBinary(b *ast.BinaryExpr) (ast.Node, bool, error) {
	left, leftParam, err := removeNode(b.Left)
	if err != nil {
		return nil, false, err
	}
	right, rightParam, err := removeNode(b.Right)
	if err != nil {
		return nil, false, err
	}

	if isLogicalAnd(b.Op) {
		switch {
		case leftParam && rightParam:
			return nil, true, nil
		case leftParam:
			return right, false, nil
		case rightParam:
			return left, false, nil
		default:
			b.Left = left.(ast.Expr)
			b.Right = right.(ast.Expr)
			return b, false, nil
		}
	}

	if isLogicalOr(b.Op) {
		if leftParam || rightParam {
			return nil, true, nil
		}
		b.Left = left.(ast.Expr)
		b.Right = right.(ast.Expr)
		return b, false, nil
	}

	// Any other binary operator: parameterized on either side drops whole.
	if leftParam || rightParam {
		return nil, true, nil
	}
	b.Left = left.(ast.Expr)
	b.Right = right.(ast.Expr)
	return b, false, nil
}

func isLogicalAnd(op token.Token) bool { return op == token.AND }

func isLogicalOr(op token.Token) bool { return op == token.OR }

func removeCase(c *ast.CaseExpr) (ast.Node, bool, error) {
	if c.Operand != nil {
		_, hasParam, err := removeNode(c.Operand)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			return nil, true, nil
		}
	}
	if c.Else != nil {
		rebuiltElse, hasParam, err := removeNode(c.Else)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			c.Else = nil
		} else {
			c.Else = rebuiltElse.(ast.Expr)
		}
	}

	kept := make([]*ast.When, 0, len(c.Whens))
	for _, w := range c.Whens {
		rebuiltCond, condParam, err := removeNode(w.Cond)
		if err != nil {
			return nil, false, err
		}
		rebuiltResult, resultParam, err := removeNode(w.Result)
		if err != nil {
			return nil, false, err
		}
		if condParam || resultParam {
			continue
		}
		w.Cond = rebuiltCond.(ast.Expr)
		w.Result = rebuiltResult.(ast.Expr)
		kept = append(kept, w)
	}
	if len(kept) == 0 && c.Else == nil {
		return nil, true, nil
	}
	c.Whens = kept
	return c, false, nil
}

func removeSelect(s *ast.SelectStmt) (ast.Node, bool, error) {
	if s.Where != nil {
		rebuilt, hasParam, err := removeNode(s.Where)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			s.Where = nil
		} else {
			s.Where = rebuilt.(ast.Expr)
		}
	}
	if s.Having != nil {
		rebuilt, hasParam, err := removeNode(s.Having)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			s.Having = nil
		} else {
			s.Having = rebuilt.(ast.Expr)
		}
	}

	cols := make([]ast.SelectExpr, 0, len(s.Columns))
	for _, col := range s.Columns {
		rebuilt, hasParam, err := removeNode(col)
		if err != nil {
			return nil, false, err
		}
		if hasParam {
			continue
		}
		cols = append(cols, rebuilt.(ast.SelectExpr))
	}
	if len(cols) == 0 {
		return nil, false, pgerror.New(pgerror.EmptySelect,
			"removing parameter expressions would leave SELECT with no columns").WithPos(s.Pos())
	}
	s.Columns = cols

	return s, false, nil
}
