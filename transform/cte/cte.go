// Package cte implements the CTE-hoisting pipeline: collecting WITH-clause
// common table expressions out of a query tree, erasing the WITH clauses
// that held them, resolving name conflicts between CTEs collected from
// different nesting levels, topologically ordering them by reference, and
// re-injecting the result as a single WITH clause at the query root.
//
// The pipeline runs as five separate passes rather than one fused walk so
// each stage's invariant (collection order, conflict resolution, cycle
// detection) can be tested and reasoned about independently, the way the
// teacher keeps the parser's statement/expression/DML grammars in
// separate files despite all being reachable from one entry point.
package cte

import (
	"github.com/pgsqlast/pgsqlast/ast"
	"github.com/pgsqlast/pgsqlast/format"
	"github.com/pgsqlast/pgsqlast/pgerror"
	"github.com/pgsqlast/pgsqlast/visit"
)

// Collect returns every CTE reachable from node's WITH clauses, in
// post-order: a CTE nested inside another CTE's query comes before the
// outer CTE that contains it, matching the order a hoisted WITH clause
// must declare them in (a CTE can only reference one declared earlier in
// the same WITH clause or an enclosing one).
func Collect(node ast.Node) []*ast.CTE {
	var out []*ast.CTE
	v := visit.New[struct{}]()
	collectFrom := func(with *ast.WithClause) {
		if with == nil {
			return
		}
		for _, c := range with.CTEs {
			v.Visit(c.Query)
			out = append(out, c)
		}
	}
	v.Handle(ast.KindSelectStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		s := n.(*ast.SelectStmt)
		collectFrom(s.With)
		v.VisitChildren(s)
		return struct{}{}
	})
	v.Handle(ast.KindInsertStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		s := n.(*ast.InsertStmt)
		collectFrom(s.With)
		v.VisitChildren(s)
		return struct{}{}
	})
	v.Handle(ast.KindUpdateStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		s := n.(*ast.UpdateStmt)
		collectFrom(s.With)
		v.VisitChildren(s)
		return struct{}{}
	})
	v.Handle(ast.KindDeleteStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		s := n.(*ast.DeleteStmt)
		collectFrom(s.With)
		v.VisitChildren(s)
		return struct{}{}
	})
	for _, kind := range passthroughKinds {
		k := kind
		v.Handle(k, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
			v.VisitChildren(n)
			return struct{}{}
		})
	}
	v.Visit(node)
	return out
}

var passthroughKinds = []ast.Kind{
	ast.KindSetOp, ast.KindAliasedTableExpr, ast.KindJoinExpr, ast.KindParenTableExpr,
	ast.KindTableList, ast.KindSubquery, ast.KindBinaryExpr, ast.KindUnaryExpr,
	ast.KindParenExpr, ast.KindFuncExpr, ast.KindCastExpr, ast.KindCaseExpr,
	ast.KindInExpr, ast.KindBetweenExpr, ast.KindLikeExpr, ast.KindIsExpr,
	ast.KindExistsExpr, ast.KindAliasedExpr, ast.KindArrayExpr, ast.KindSubscriptExpr,
	ast.KindIntervalExpr, ast.KindExtractExpr, ast.KindTrimExpr, ast.KindSubstringExpr,
	ast.KindPositionExpr, ast.KindCollateExpr, ast.KindOrderByExpr, ast.KindLimit,
	ast.KindWindowSpec, ast.KindValuesStmt, ast.KindCreateTableStmt, ast.KindAlterTableStmt,
	ast.KindDropTableStmt, ast.KindCreateIndexStmt, ast.KindDropIndexStmt,
	ast.KindTruncateStmt, ast.KindExplainStmt, ast.KindStarExpr, ast.KindLiteral,
	ast.KindParam, ast.KindTableName, ast.KindColName, ast.KindTupleExpr, ast.KindValueList,
	ast.KindTypeValueExpr, ast.KindStringSpecifierExpr, ast.KindInlineQueryExpr,
	ast.KindCommentOnStmt, ast.KindQualifiedName, ast.KindRawString,
}

// EraseWith clears the WITH clause from node's own top-level statement(s)
// and from every statement reachable underneath it, leaving each CTE's own
// query otherwise untouched. Call after Collect, before re-injecting the
// hoisted result with Inject.
func EraseWith(node ast.Node) {
	// Enumerate children before clearing With, so the CTE bodies that
	// visit.Children lists for a SelectStmt are still reached.
	children := visit.Children(node)
	switch s := node.(type) {
	case *ast.SelectStmt:
		s.With = nil
	case *ast.InsertStmt:
		s.With = nil
	case *ast.UpdateStmt:
		s.With = nil
	case *ast.DeleteStmt:
		s.With = nil
	}
	for _, child := range children {
		EraseWith(child)
	}
}

// ResolveConflicts coalesces CTEs that share a name and have byte-identical
// formatted bodies, and returns an error tagged CTENameConflict for any
// name shared by CTEs with different bodies — per the decision recorded in
// DESIGN.md, silently preferring one body over another would silently
// change query semantics.
func ResolveConflicts(ctes []*ast.CTE) ([]*ast.CTE, error) {
	byName := map[string]*ast.CTE{}
	bodyByName := map[string]string{}
	var out []*ast.CTE
	for _, c := range ctes {
		body := format.String(c.Query)
		if existing, ok := byName[c.Name]; ok {
			if bodyByName[c.Name] != body {
				return nil, pgerror.New(pgerror.CTENameConflict,
					"CTE %q has conflicting definitions", c.Name)
			}
			_ = existing
			continue
		}
		byName[c.Name] = c
		bodyByName[c.Name] = body
		out = append(out, c)
	}
	return out, nil
}

// TopoSort orders ctes so that every recursive CTE (one that references
// itself) comes first, in discovery order, followed by the remaining CTEs
// in topological order — every non-recursive CTE appears after the CTEs it
// references, as WITH clause declaration order requires. A cycle among two
// or more non-recursive CTEs is reported as CTECycle.
func TopoSort(ctes []*ast.CTE) ([]*ast.CTE, error) {
	index := map[string]int{}
	for i, c := range ctes {
		index[c.Name] = i
	}
	selfRef := make([]bool, len(ctes))
	refs := make([][]int, len(ctes))
	for i, c := range ctes {
		for _, name := range referencedNames(c.Query) {
			j, ok := index[name]
			if !ok {
				continue
			}
			if j == i {
				selfRef[i] = true
				continue
			}
			refs[i] = append(refs[i], j)
		}
	}

	var recursiveIdx, regularIdx []int
	inRegular := make([]bool, len(ctes))
	for i := range ctes {
		if selfRef[i] {
			recursiveIdx = append(recursiveIdx, i)
		} else {
			regularIdx = append(regularIdx, i)
			inRegular[i] = true
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(ctes))
	var order []int
	var visitNode func(i int) error
	visitNode = func(i int) error {
		color[i] = gray
		for _, j := range refs[i] {
			if !inRegular[j] {
				continue
			}
			switch color[j] {
			case white:
				if err := visitNode(j); err != nil {
					return err
				}
			case gray:
				return pgerror.New(pgerror.CTECycle,
					"non-recursive cycle detected involving CTE %q", ctes[i].Name)
			}
		}
		color[i] = black
		order = append(order, i)
		return nil
	}
	for _, i := range regularIdx {
		if color[i] == white {
			if err := visitNode(i); err != nil {
				return nil, err
			}
		}
	}

	out := make([]*ast.CTE, 0, len(ctes))
	for _, i := range recursiveIdx {
		out = append(out, ctes[i])
	}
	for _, i := range order {
		out = append(out, ctes[i])
	}
	return out, nil
}

func referencedNames(node ast.Node) []string {
	var out []string
	v := visit.New[struct{}]()
	v.Handle(ast.KindTableName, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		out = append(out, n.(*ast.TableName).Name())
		return struct{}{}
	})
	for _, kind := range passthroughKinds {
		if kind == ast.KindTableName {
			continue
		}
		k := kind
		v.Handle(k, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
			v.VisitChildren(n)
			return struct{}{}
		})
	}
	v.Handle(ast.KindSelectStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		v.VisitChildren(n)
		return struct{}{}
	})
	v.Handle(ast.KindInsertStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		v.VisitChildren(n)
		return struct{}{}
	})
	v.Handle(ast.KindUpdateStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		v.VisitChildren(n)
		return struct{}{}
	})
	v.Handle(ast.KindDeleteStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		v.VisitChildren(n)
		return struct{}{}
	})
	v.Visit(node)
	return out
}

// Normalize runs Collect, EraseWith, ResolveConflicts, and TopoSort in
// sequence and returns the ordered CTE list ready for Inject.
func Normalize(root ast.Node) ([]*ast.CTE, error) {
	collected := Collect(root)
	EraseWith(root)
	resolved, err := ResolveConflicts(collected)
	if err != nil {
		return nil, err
	}
	return TopoSort(resolved)
}

// Inject attaches ctes as a single WITH clause at root: for a SelectStmt it
// replaces root.With directly; for a SetOp (UNION/INTERSECT/EXCEPT) it
// attaches to the leftmost leaf SELECT, matching where PostgreSQL allows a
// WITH clause to appear in a set-operation tree. recursive is true if any
// injected CTE references itself.
func Inject(root ast.Statement, ctes []*ast.CTE) ast.Statement {
	if len(ctes) == 0 {
		return root
	}
	with := &ast.WithClause{CTEs: ctes, Recursive: anyRecursive(ctes)}
	switch s := root.(type) {
	case *ast.SelectStmt:
		s.With = with
		return s
	case *ast.InsertStmt:
		s.With = with
		return s
	case *ast.UpdateStmt:
		s.With = with
		return s
	case *ast.DeleteStmt:
		s.With = with
		return s
	case *ast.SetOp:
		leaf := leftmostLeaf(s)
		if sel, ok := leaf.(*ast.SelectStmt); ok {
			sel.With = with
		}
		return s
	default:
		return root
	}
}

func leftmostLeaf(s *ast.SetOp) ast.Statement {
	left := s.Left
	for {
		if inner, ok := left.(*ast.SetOp); ok {
			left = inner.Left
			continue
		}
		return left
	}
}

func anyRecursive(ctes []*ast.CTE) bool {
	names := map[string]bool{}
	for _, c := range ctes {
		names[c.Name] = true
	}
	for _, c := range ctes {
		for _, name := range referencedNames(c.Query) {
			if name == c.Name && names[name] {
				return true
			}
		}
	}
	return false
}
