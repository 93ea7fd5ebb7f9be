// Package visit provides the kind-tagged visitor framework every transform
// in this module is built on: a node answers "what kind am I?" via
// ast.Tagged.Kind(), and a Visitor holds a table of handlers keyed by that
// tag, rather than a Go type switch repeated in every caller.
//
// Children enumerates a node's direct AST children in the same order the
// teacher's visitor.Walk traversed them; visitor.Walk is kept as an adapter
// over this enumeration for source-compatible callers that still want the
// untyped Visitor interface instead of Visitor[T]. visitor.Rewrite keeps its
// own per-type switch and does not use this enumeration.
package visit

import "github.com/pgsqlast/pgsqlast/ast"

// Children returns node's direct children, in traversal order, skipping
// nils. It does not recurse.
func Children(node ast.Node) []ast.Node {
	var out []ast.Node
	add := func(n ast.Node) {
		if n == nil || isNilNode(n) {
			return
		}
		out = append(out, n)
	}

	switch n := node.(type) {
	case *ast.SelectStmt:
		if n.With != nil {
			for _, cte := range n.With.CTEs {
				add(cte.Query)
			}
		}
		for _, col := range n.Columns {
			add(col)
		}
		add(n.From)
		add(n.Where)
		for _, expr := range n.GroupBy {
			add(expr)
		}
		add(n.Having)
		for _, ob := range n.OrderBy {
			add(ob)
		}
		if n.Limit != nil {
			add(n.Limit)
		}

	case *ast.InsertStmt:
		add(n.Table)
		for _, col := range n.Columns {
			add(col)
		}
		for _, row := range n.Values {
			for _, val := range row {
				add(val)
			}
		}
		add(n.Select)
		for _, ue := range n.OnDuplicateUpdate {
			add(ue.Column)
			add(ue.Expr)
		}
		for _, se := range n.Returning {
			add(se)
		}

	case *ast.UpdateStmt:
		add(n.Table)
		for _, ue := range n.Set {
			add(ue.Column)
			add(ue.Expr)
		}
		add(n.From)
		add(n.Where)
		for _, se := range n.Returning {
			add(se)
		}

	case *ast.DeleteStmt:
		add(n.Table)
		add(n.Using)
		add(n.Where)
		for _, se := range n.Returning {
			add(se)
		}

	case *ast.SetOp:
		add(n.Left)
		add(n.Right)
		for _, ob := range n.OrderBy {
			add(ob)
		}
		if n.Limit != nil {
			add(n.Limit)
		}

	case *ast.BinaryExpr:
		add(n.Left)
		add(n.Right)

	case *ast.UnaryExpr:
		add(n.Operand)

	case *ast.ParenExpr:
		add(n.Expr)

	case *ast.FuncExpr:
		for _, arg := range n.Args {
			add(arg)
		}
		for _, ob := range n.OrderBy {
			add(ob)
		}
		add(n.Filter)
		if n.Over != nil {
			add(n.Over)
		}

	case *ast.CaseExpr:
		add(n.Operand)
		for _, w := range n.Whens {
			add(w.Cond)
			add(w.Result)
		}
		add(n.Else)

	case *ast.InExpr:
		add(n.Expr)
		for _, val := range n.Values {
			add(val)
		}
		add(n.Select)

	case *ast.BetweenExpr:
		add(n.Expr)
		add(n.Low)
		add(n.High)

	case *ast.LikeExpr:
		add(n.Expr)
		add(n.Pattern)
		add(n.Escape)

	case *ast.IsExpr:
		add(n.Expr)

	case *ast.CastExpr:
		add(n.Expr)

	case *ast.Subquery:
		add(n.Select)

	case *ast.ExistsExpr:
		add(n.Subquery)

	case *ast.AliasedExpr:
		add(n.Expr)

	case *ast.AliasedTableExpr:
		add(n.Expr)

	case *ast.JoinExpr:
		add(n.Left)
		add(n.Right)
		add(n.On)

	case *ast.ParenTableExpr:
		add(n.Expr)

	case *ast.WindowSpec:
		for _, pb := range n.PartitionBy {
			add(pb)
		}
		for _, ob := range n.OrderBy {
			add(ob)
		}

	case *ast.OrderByExpr:
		add(n.Expr)

	case *ast.Limit:
		add(n.Count)
		add(n.Offset)

	case *ast.IntervalExpr:
		add(n.Value)

	case *ast.ExtractExpr:
		add(n.Source)

	case *ast.TrimExpr:
		add(n.TrimChar)
		add(n.Expr)

	case *ast.SubstringExpr:
		add(n.Expr)
		add(n.From)
		add(n.For)

	case *ast.PositionExpr:
		add(n.Needle)
		add(n.Haystack)

	case *ast.ArrayExpr:
		for _, elem := range n.Elements {
			add(elem)
		}

	case *ast.SubscriptExpr:
		add(n.Expr)
		add(n.Index)

	case *ast.CollateExpr:
		add(n.Expr)

	case *ast.CreateTableStmt:
		add(n.Table)
		add(n.As)
		for _, col := range n.Columns {
			for _, cons := range col.Constraints {
				add(cons.Default)
				add(cons.Check)
			}
		}
		for _, tc := range n.Constraints {
			add(tc.Check)
		}

	case *ast.AlterTableStmt:
		add(n.Table)

	case *ast.DropTableStmt:
		for _, t := range n.Tables {
			add(t)
		}

	case *ast.CreateIndexStmt:
		add(n.Table)
		for _, ic := range n.Columns {
			add(ic.Expr)
		}
		add(n.Where)

	case *ast.DropIndexStmt:
		add(n.Table)

	case *ast.TruncateStmt:
		for _, t := range n.Tables {
			add(t)
		}

	case *ast.ExplainStmt:
		add(n.Stmt)

	case *ast.ValuesStmt:
		for _, row := range n.Rows {
			for _, val := range row {
				add(val)
			}
		}

	case *ast.TableList:
		for _, t := range n.Tables {
			add(t)
		}

	case *ast.TupleExpr:
		for _, e := range n.Elements {
			add(e)
		}

	case *ast.ValueList:
		for _, e := range n.Values {
			add(e)
		}

	case *ast.StringSpecifierExpr:
		add(n.Raw)

	case *ast.InlineQueryExpr:
		add(n.Select)

	case *ast.CommentOnStmt:
		add(n.Name)
	}

	return out
}

func isNilNode(n ast.Node) bool {
	// ast.Node values stored as typed nil pointers (e.g. a *ast.SelectStmt
	// field left unset) are != nil as interfaces but should still be
	// skipped, matching ast.pool's isNil helper.
	switch v := n.(type) {
	case *ast.SelectStmt:
		return v == nil
	case *ast.InsertStmt:
		return v == nil
	case *ast.UpdateStmt:
		return v == nil
	case *ast.DeleteStmt:
		return v == nil
	case *ast.Subquery:
		return v == nil
	case *ast.TableName:
		return v == nil
	case *ast.Limit:
		return v == nil
	case *ast.WindowSpec:
		return v == nil
	default:
		return false
	}
}
