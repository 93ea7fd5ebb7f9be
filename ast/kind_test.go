package ast

import "testing"

func TestKindStringKnownAndUnknown(t *testing.T) {
	if got := KindSelectStmt.String(); got != "SelectStmt" {
		t.Errorf("KindSelectStmt.String() = %q, want %q", got, "SelectStmt")
	}
	if got := KindCommentOnStmt.String(); got != "CommentOnStmt" {
		t.Errorf("KindCommentOnStmt.String() = %q, want %q", got, "CommentOnStmt")
	}
	if got := Kind(-1).String(); got != "Unknown" {
		t.Errorf("Kind(-1).String() = %q, want %q", got, "Unknown")
	}
	if got := Kind(len(kindNames) + 10).String(); got != "Unknown" {
		t.Errorf("out-of-range Kind.String() = %q, want %q", got, "Unknown")
	}
}

// TestEveryTaggedNodeReportsItsOwnKind guards against the class of bug that
// bit transform/collect: a node whose Kind() constant doesn't match its
// position in kindNames, or a newly added node type that forgot to
// implement Tagged at all, would make a visit.Visitor dispatch to the wrong
// handler instead of panicking cleanly.
func TestEveryTaggedNodeReportsItsOwnKind(t *testing.T) {
	tests := []struct {
		name string
		node Tagged
		want Kind
	}{
		{"TableName", &TableName{}, KindTableName},
		{"ColName", &ColName{}, KindColName},
		{"SelectStmt", &SelectStmt{}, KindSelectStmt},
		{"InsertStmt", &InsertStmt{}, KindInsertStmt},
		{"UpdateStmt", &UpdateStmt{}, KindUpdateStmt},
		{"DeleteStmt", &DeleteStmt{}, KindDeleteStmt},
		{"SetOp", &SetOp{}, KindSetOp},
		{"BinaryExpr", &BinaryExpr{}, KindBinaryExpr},
		{"Literal", &Literal{}, KindLiteral},
		{"Param", &Param{}, KindParam},
		{"RawString", &RawString{}, KindRawString},
		{"QualifiedName", &QualifiedName{}, KindQualifiedName},
		{"TupleExpr", &TupleExpr{}, KindTupleExpr},
		{"ValueList", &ValueList{}, KindValueList},
		{"TypeValueExpr", &TypeValueExpr{}, KindTypeValueExpr},
		{"StringSpecifierExpr", &StringSpecifierExpr{}, KindStringSpecifierExpr},
		{"InlineQueryExpr", &InlineQueryExpr{}, KindInlineQueryExpr},
		{"CommentOnStmt", &CommentOnStmt{}, KindCommentOnStmt},
	}
	for _, tt := range tests {
		if got := tt.node.Kind(); got != tt.want {
			t.Errorf("%s.Kind() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKindNamesTableHasNoGaps(t *testing.T) {
	for k := KindTableName; int(k) < len(kindNames); k++ {
		if kindNames[k] == "" {
			t.Errorf("kindNames[%d] is empty, every declared Kind needs a name", k)
		}
	}
}
