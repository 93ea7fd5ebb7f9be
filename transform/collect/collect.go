// Package collect gathers table sources, column references, and the
// selectable output columns of a query, walking the tree through
// package visit the way a formatter or linter would need to.
package collect

import (
	"github.com/pgsqlast/pgsqlast/ast"
	"github.com/pgsqlast/pgsqlast/pgerror"
	"github.com/pgsqlast/pgsqlast/visit"
)

// descendingVisitor builds a Visitor[struct{}] that descends through every
// structural kind (everything structuralKinds lists), with leafKind given
// its own handler and every other structural kind just recursing into its
// children. Kinds absent from structuralKinds and not equal to leafKind
// are leaves with no handler registered, which is correct here: none of
// them (Literal's scalar fields, DataType, etc.) can contain a TableName
// or ColName.
func descendingVisitor(leafKind ast.Kind, onLeaf func(ast.Tagged)) *visit.Visitor[struct{}] {
	v := visit.New[struct{}]()
	v.Handle(leafKind, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
		onLeaf(n)
		return struct{}{}
	})
	for _, kind := range structuralKinds() {
		if kind == leafKind {
			continue
		}
		v.Handle(kind, func(n ast.Tagged, recurse func(ast.Node) struct{}) struct{} {
			v.VisitChildren(n)
			return struct{}{}
		})
	}
	return v
}

// TableSources returns every TableName reachable from node, in traversal
// order, each node once. Aliased and joined tables are unwrapped to their
// underlying TableName, and the walk descends into subqueries (in FROM,
// IN or EXISTS position) and CTE bodies, so their tables are included.
// Two distinct TableName nodes that spell the same name are both returned.
func TableSources(node ast.Node) []*ast.TableName {
	var out []*ast.TableName
	seen := map[*ast.TableName]bool{}
	v := descendingVisitor(ast.KindTableName, func(n ast.Tagged) {
		t := n.(*ast.TableName)
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	})
	v.Visit(node)
	return out
}

// ColumnRefs returns every ColName referenced anywhere under node, in
// traversal order, including duplicates (a WHERE clause comparing the same
// column twice yields two entries).
func ColumnRefs(node ast.Node) []*ast.ColName {
	var out []*ast.ColName
	v := descendingVisitor(ast.KindColName, func(n ast.Tagged) {
		out = append(out, n.(*ast.ColName))
	})
	v.Visit(node)
	return out
}

// TableColumnResolver answers which columns a schema-qualified table name
// exposes, so SelectableColumns can expand a bare "*" into its concrete
// column list. The second return value is false when the table is unknown
// to the resolver. A caller with schema information (a catalog, an
// introspected connection) supplies one; SelectableColumns cannot expand a
// "*" without it.
type TableColumnResolver func(table *ast.QualifiedName) ([]string, bool)

// SelectableColumn is one entry in a SELECT's output list: the name it
// would be addressable by downstream (an alias, a bare column name, or a
// resolved "*" member) paired with the expression that produces its value.
type SelectableColumn struct {
	Name string
	Expr ast.Expr
}

// SelectableColumns returns the (name, value-expression) pairs a SELECT's
// column list would produce, in order: an AliasedExpr contributes its alias
// if set, else the underlying ColName's Name(), paired with its expression;
// a StarExpr is expanded, recursively through CTE and subquery sources,
// into one SelectableColumn per resolved column. Expanding a "*" requires
// resolve; SelectableColumns returns an Ambiguous error if a star is
// encountered and resolve is nil. Names are first-wins: a column already
// produced (by an earlier explicit expression or an earlier-expanded
// source) is not added again under the same name.
func SelectableColumns(sel *ast.SelectStmt, resolve TableColumnResolver) ([]SelectableColumn, error) {
	seen := map[string]bool{}
	var out []SelectableColumn
	add := func(name string, expr ast.Expr) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, SelectableColumn{Name: name, Expr: expr})
	}

	for _, col := range sel.Columns {
		switch c := col.(type) {
		case *ast.AliasedExpr:
			if c.Alias != "" {
				add(c.Alias, c.Expr)
				continue
			}
			if cn, ok := c.Expr.(*ast.ColName); ok {
				add(cn.Name(), c.Expr)
			}
		case *ast.StarExpr:
			if resolve == nil {
				return nil, pgerror.New(pgerror.Ambiguous,
					"cannot expand \"*\" without a TableColumnResolver")
			}
			expanded, err := expandStar(sel, c, resolve)
			if err != nil {
				return nil, err
			}
			for _, sc := range expanded {
				add(sc.Name, sc.Expr)
			}
		}
	}
	return out, nil
}

// expandStar resolves a single StarExpr against sel's FROM tree: a
// qualified star ("a.*") expands only the source matching its qualifier,
// an unqualified one expands every source. A table source backed by a CTE
// declared in sel.With is expanded by recursing into the CTE's own query
// rather than calling resolve; a subquery source is expanded by recursing
// into its own SelectableColumns. A plain table source is resolved via
// resolve, wrapping its parts into a QualifiedName.
func expandStar(sel *ast.SelectStmt, star *ast.StarExpr, resolve TableColumnResolver) ([]SelectableColumn, error) {
	if sel.From == nil {
		return nil, nil
	}
	var out []SelectableColumn
	for _, src := range tableSources(sel.From) {
		if star.HasQualifier && src.qualifier != star.TableName {
			continue
		}
		cols, err := expandSource(sel, src, resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, cols...)
	}
	return out, nil
}

func expandSource(sel *ast.SelectStmt, src tableSource, resolve TableColumnResolver) ([]SelectableColumn, error) {
	if src.subquery != nil {
		return SelectableColumns(src.subquery.Select, resolve)
	}
	if cte := lookupCTE(sel, src.table.Name()); cte != nil {
		if inner, ok := cte.Query.(*ast.SelectStmt); ok {
			return SelectableColumns(inner, resolve)
		}
		return nil, nil
	}
	names, ok := resolve(&ast.QualifiedName{Parts: src.table.Parts})
	if !ok {
		return nil, pgerror.New(pgerror.Ambiguous,
			"no column information for table %q", src.table.Name())
	}
	cols := make([]SelectableColumn, 0, len(names))
	for _, name := range names {
		cols = append(cols, SelectableColumn{
			Name: name,
			Expr: &ast.ColName{Parts: append(append([]string{}, src.table.Parts...), name)},
		})
	}
	return cols, nil
}

func lookupCTE(sel *ast.SelectStmt, name string) *ast.CTE {
	if sel.With == nil {
		return nil
	}
	for _, c := range sel.With.CTEs {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// tableSource is one leaf table-position source found by walking a FROM
// tree, carrying whatever qualifier ("a.*" would match against) it's
// addressable by: the alias if one was given, else the table's own name.
type tableSource struct {
	qualifier string
	table     *ast.TableName
	subquery  *ast.Subquery
}

func tableSources(expr ast.TableExpr) []tableSource {
	switch t := expr.(type) {
	case *ast.TableName:
		return []tableSource{{qualifier: t.Name(), table: t}}
	case *ast.Subquery:
		return []tableSource{{subquery: t}}
	case *ast.AliasedTableExpr:
		inner := tableSources(t.Expr)
		if t.Alias != "" {
			for i := range inner {
				inner[i].qualifier = t.Alias
			}
		}
		return inner
	case *ast.JoinExpr:
		return append(tableSources(t.Left), tableSources(t.Right)...)
	case *ast.ParenTableExpr:
		return tableSources(t.Expr)
	default:
		return nil
	}
}

// structuralKinds lists every Kind a descendingVisitor must register a
// handler for, because a traversal rooted at a query can reach it even
// when it isn't the leaf kind a particular caller is collecting: besides
// the two leaf kinds (TableName, ColName, each registered separately by
// descendingVisitor's caller), that's every other Kind in the grammar.
// Omitting one here means Visit panics via pgerror.Unhandled the moment
// traversal reaches it from the "wrong" caller (e.g. ColumnRefs walking
// past a TableName in a FROM clause).
func structuralKinds() []ast.Kind {
	return []ast.Kind{
		ast.KindSelectStmt, ast.KindInsertStmt, ast.KindUpdateStmt, ast.KindDeleteStmt,
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
		ast.KindParam, ast.KindTupleExpr, ast.KindValueList, ast.KindTypeValueExpr,
		ast.KindStringSpecifierExpr, ast.KindInlineQueryExpr, ast.KindCommentOnStmt,
		ast.KindQualifiedName, ast.KindRawString, ast.KindTableName, ast.KindColName,
	}
}
