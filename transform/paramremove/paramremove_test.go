package paramremove

import (
	"testing"

	"github.com/pgsqlast/pgsqlast/ast"
	"github.com/pgsqlast/pgsqlast/format"
	"github.com/pgsqlast/pgsqlast/pgerror"
	"github.com/pgsqlast/pgsqlast/token"
)

func col(name string) *ast.ColName { return &ast.ColName{Parts: []string{name}} }

func lit(v string) *ast.Literal { return &ast.Literal{Type: ast.LiteralInt, Value: v} }

func param() *ast.Param { return &ast.Param{Type: ast.ParamColon, Name: "p"} }

func selectWith(where ast.Expr) *ast.SelectStmt {
	return &ast.SelectStmt{
		Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: col("id")}},
		From:    &ast.TableName{Parts: []string{"users"}},
		Where:   where,
	}
}

func TestRemoveANDKeepsNonParameterizedSide(t *testing.T) {
	where := &ast.BinaryExpr{
		Op:    token.AND,
		Left:  &ast.BinaryExpr{Op: token.EQ, Left: col("status"), Right: lit("1")},
		Right: &ast.BinaryExpr{Op: token.EQ, Left: col("owner"), Right: param()},
	}
	out, err := Remove(selectWith(where))
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	kept, ok := out.Where.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr WHERE, got %T", out.Where)
	}
	if kept.Op != token.EQ {
		t.Errorf("expected the status=1 side to survive, got op %v", kept.Op)
	}
}

func TestRemoveORDropsWholeOnEitherSideParameterized(t *testing.T) {
	where := &ast.BinaryExpr{
		Op:    token.OR,
		Left:  &ast.BinaryExpr{Op: token.EQ, Left: col("status"), Right: lit("1")},
		Right: &ast.BinaryExpr{Op: token.EQ, Left: col("owner"), Right: param()},
	}
	out, err := Remove(selectWith(where))
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if out.Where != nil {
		t.Errorf("expected WHERE to be nil after OR containing a parameter, got %v", format.String(out.Where))
	}
}

func TestRemoveBetweenDropsWholeOnAnyBoundParameterized(t *testing.T) {
	where := &ast.BetweenExpr{Expr: col("age"), Low: lit("18"), High: param()}
	out, err := Remove(selectWith(where))
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if out.Where != nil {
		t.Errorf("expected WHERE to be nil, got %v", format.String(out.Where))
	}
}

func TestRemoveCasePrunesParameterizedWhenArms(t *testing.T) {
	c := &ast.CaseExpr{
		Whens: []*ast.When{
			{Cond: &ast.BinaryExpr{Op: token.EQ, Left: col("a"), Right: lit("1")}, Result: lit("10")},
			{Cond: &ast.BinaryExpr{Op: token.EQ, Left: col("b"), Right: param()}, Result: lit("20")},
		},
		Else: lit("0"),
	}
	sel := &ast.SelectStmt{
		Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: c, Alias: "bucket"}},
		From:    &ast.TableName{Parts: []string{"t"}},
	}
	out, err := Remove(sel)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	aliased := out.Columns[0].(*ast.AliasedExpr)
	kept := aliased.Expr.(*ast.CaseExpr)
	if len(kept.Whens) != 1 {
		t.Fatalf("expected 1 surviving WHEN arm, got %d", len(kept.Whens))
	}
}

func TestRemoveCaseKeepsPrunedNestedANDInWhenArm(t *testing.T) {
	// CASE WHEN (a=1 AND b=:p) THEN 10 ELSE 0 END: the WHEN arm's cond
	// survives with just a=1 once the parameterized b=$1 side is pruned by
	// the AND rule, rather than the arm surviving with its original,
	// still-parameterized condition.
	c := &ast.CaseExpr{
		Whens: []*ast.When{
			{
				Cond: &ast.BinaryExpr{
					Op:    token.AND,
					Left:  &ast.BinaryExpr{Op: token.EQ, Left: col("a"), Right: lit("1")},
					Right: &ast.BinaryExpr{Op: token.EQ, Left: col("b"), Right: param()},
				},
				Result: lit("10"),
			},
		},
		Else: lit("0"),
	}
	sel := &ast.SelectStmt{
		Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: c, Alias: "bucket"}},
		From:    &ast.TableName{Parts: []string{"t"}},
	}
	out, err := Remove(sel)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	aliased := out.Columns[0].(*ast.AliasedExpr)
	kept := aliased.Expr.(*ast.CaseExpr)
	if len(kept.Whens) != 1 {
		t.Fatalf("expected 1 surviving WHEN arm, got %d", len(kept.Whens))
	}
	cond, ok := kept.Whens[0].Cond.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected surviving cond to be a BinaryExpr, got %T", kept.Whens[0].Cond)
	}
	if cond.Op != token.EQ {
		t.Errorf("expected the a=1 side to survive in place of the AND, got op %v", cond.Op)
	}
}

func TestRemoveCaseDropsOnlyElseWhenItAloneIsParameterized(t *testing.T) {
	// CASE WHEN a=1 THEN 10 ELSE :p END should reduce to CASE WHEN a=1
	// THEN 10 END, not disappear, since the arm list isn't empty.
	c := &ast.CaseExpr{
		Whens: []*ast.When{
			{Cond: &ast.BinaryExpr{Op: token.EQ, Left: col("a"), Right: lit("1")}, Result: lit("10")},
		},
		Else: param(),
	}
	sel := &ast.SelectStmt{
		Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: c, Alias: "bucket"}},
		From:    &ast.TableName{Parts: []string{"t"}},
	}
	out, err := Remove(sel)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	aliased := out.Columns[0].(*ast.AliasedExpr)
	kept := aliased.Expr.(*ast.CaseExpr)
	if len(kept.Whens) != 1 {
		t.Fatalf("expected the WHEN arm to survive, got %d arms", len(kept.Whens))
	}
	if kept.Else != nil {
		t.Errorf("expected Else to be dropped, got %v", format.String(kept.Else))
	}
}

func TestRemoveCaseDropsWholeWhenOperandParameterized(t *testing.T) {
	c := &ast.CaseExpr{
		Operand: param(),
		Whens: []*ast.When{
			{Cond: lit("1"), Result: lit("10")},
		},
	}
	sel := &ast.SelectStmt{
		Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: col("id")}, &ast.AliasedExpr{Expr: c}},
		From:    &ast.TableName{Parts: []string{"t"}},
	}
	out, err := Remove(sel)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if len(out.Columns) != 1 {
		t.Fatalf("expected the parameterized CASE column to be dropped, got %d columns", len(out.Columns))
	}
}

func TestRemoveEmptiesWhereClauseRatherThanLeavingDanglingOperand(t *testing.T) {
	out, err := Remove(selectWith(&ast.BinaryExpr{Op: token.EQ, Left: col("id"), Right: param()}))
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if out.Where != nil {
		t.Errorf("expected WHERE nil, got %v", format.String(out.Where))
	}
}

func TestRemoveReturnsEmptySelectWhenAllColumnsDropped(t *testing.T) {
	sel := &ast.SelectStmt{
		Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: param()}},
		From:    &ast.TableName{Parts: []string{"t"}},
	}
	_, err := Remove(sel)
	if err == nil {
		t.Fatal("expected EmptySelect error")
	}
	perr, ok := err.(*pgerror.Error)
	if !ok {
		t.Fatalf("expected *pgerror.Error, got %T", err)
	}
	if perr.Kind != pgerror.EmptySelect {
		t.Errorf("error kind = %v, want EmptySelect", perr.Kind)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	inputs := []*ast.SelectStmt{
		selectWith(&ast.BinaryExpr{
			Op:    token.AND,
			Left:  &ast.BinaryExpr{Op: token.EQ, Left: col("status"), Right: lit("1")},
			Right: &ast.BinaryExpr{Op: token.EQ, Left: col("owner"), Right: param()},
		}),
		selectWith(&ast.BetweenExpr{Expr: col("age"), Low: lit("18"), High: param()}),
		selectWith(nil),
	}
	for i, sel := range inputs {
		once, err := Remove(sel)
		if err != nil {
			t.Fatalf("input %d: first Remove error: %v", i, err)
		}
		twice, err := Remove(once)
		if err != nil {
			t.Fatalf("input %d: second Remove error: %v", i, err)
		}
		if format.String(once) != format.String(twice) {
			t.Errorf("input %d: Remove not idempotent: %s != %s", i, format.String(once), format.String(twice))
		}
	}
}

func TestRemoveFuncArgDropsWholeCallOnParameterizedArg(t *testing.T) {
	fn := &ast.FuncExpr{Name: "coalesce", Args: []ast.Expr{col("a"), param()}}
	sel := &ast.SelectStmt{
		Columns: []ast.SelectExpr{&ast.AliasedExpr{Expr: col("id")}, &ast.AliasedExpr{Expr: fn}},
		From:    &ast.TableName{Parts: []string{"t"}},
	}
	out, err := Remove(sel)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if len(out.Columns) != 1 {
		t.Fatalf("expected the parameterized function call column to be dropped, got %d columns", len(out.Columns))
	}
}
