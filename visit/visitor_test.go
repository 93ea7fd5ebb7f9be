package visit

import (
	"testing"

	"github.com/pgsqlast/pgsqlast/ast"
)

func simpleSelect() *ast.SelectStmt {
	return &ast.SelectStmt{
		Columns: []ast.SelectExpr{
			&ast.AliasedExpr{Expr: &ast.ColName{Parts: []string{"id"}}},
		},
		From:  &ast.TableName{Parts: []string{"users"}},
		Where: &ast.BinaryExpr{Left: &ast.ColName{Parts: []string{"id"}}, Right: &ast.Literal{Value: "1"}},
	}
}

func TestChildrenEnumeratesSelectParts(t *testing.T) {
	sel := simpleSelect()
	children := Children(sel)
	if len(children) == 0 {
		t.Fatal("expected SelectStmt to report children")
	}
	var sawFrom, sawWhere, sawColumn bool
	for _, c := range children {
		switch c.(type) {
		case *ast.TableName:
			sawFrom = true
		case *ast.BinaryExpr:
			sawWhere = true
		case *ast.AliasedExpr:
			sawColumn = true
		}
	}
	if !sawFrom || !sawWhere || !sawColumn {
		t.Errorf("missing expected children: from=%v where=%v column=%v", sawFrom, sawWhere, sawColumn)
	}
}

func TestVisitorDispatchesByKind(t *testing.T) {
	sel := simpleSelect()
	var tableNames []string
	v := New[struct{}]()
	v.Handle(ast.KindTableName, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		tableNames = append(tableNames, n.(*ast.TableName).Name())
		return struct{}{}
	})
	v.Handle(ast.KindSelectStmt, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		v.VisitChildren(n)
		return struct{}{}
	})
	v.Handle(ast.KindBinaryExpr, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		v.VisitChildren(n)
		return struct{}{}
	})
	v.Handle(ast.KindAliasedExpr, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		v.VisitChildren(n)
		return struct{}{}
	})
	v.Handle(ast.KindColName, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} { return struct{}{} })
	v.Handle(ast.KindLiteral, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} { return struct{}{} })

	v.Visit(sel)

	if len(tableNames) != 1 || tableNames[0] != "users" {
		t.Errorf("tableNames = %v, want [users]", tableNames)
	}
}

func TestVisitorPanicsOnUnhandledKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unhandled kind")
		}
	}()
	v := New[struct{}]()
	v.Visit(&ast.TableName{Parts: []string{"t"}})
}

func TestVisitorCycleGuardVisitsSharedNodeOnce(t *testing.T) {
	shared := &ast.ColName{Parts: []string{"x"}}
	bin := &ast.BinaryExpr{Left: shared, Right: shared}

	visits := 0
	v := New[struct{}]()
	v.Handle(ast.KindBinaryExpr, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		v.VisitChildren(n)
		return struct{}{}
	})
	v.Handle(ast.KindColName, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		visits++
		return struct{}{}
	})
	v.Visit(bin)

	if visits != 1 {
		t.Errorf("visits = %d, want 1 (cycle guard should dedup shared node)", visits)
	}
}
