package ast

import "github.com/pgsqlast/pgsqlast/token"

// RawString is a string literal carrying the specifier that introduced it
// (E'...', X'...', U&'...', or a dollar-quoted $tag$...$tag$ body). The
// teacher's Literal collapses all string literals to LiteralString; this
// keeps the specifier so a transform can tell a dollar-quoted body from a
// plain one without re-lexing the source.
type RawString struct {
	StartPos token.Pos
	EndPos   token.Pos
	StrKind  token.StringKind
	Tag      string // dollar-quote tag, e.g. "" or "body" in $body$...$body$
	Value    string // literal text between the delimiters, unescaped
}

func (*RawString) exprNode()        {}
func (r *RawString) Pos() token.Pos { return r.StartPos }
func (r *RawString) End() token.Pos { return r.EndPos }
func (*RawString) Kind() Kind       { return KindRawString }

// QualifiedName is a dotted identifier path used where a name, rather than
// a column or table reference, is grammatically required (COMMENT ON
// target names, index/constraint names with a schema qualifier). ColName
// and TableName keep their own Parts-based accessors for compatibility with
// existing callers; QualifiedName is for the new constructs that don't fit
// either.
type QualifiedName struct {
	StartPos token.Pos
	EndPos   token.Pos
	Parts    []string
}

func (*QualifiedName) exprNode()        {}
func (q *QualifiedName) Pos() token.Pos { return q.StartPos }
func (q *QualifiedName) End() token.Pos { return q.EndPos }
func (*QualifiedName) Kind() Kind       { return KindQualifiedName }

// Name returns the last path segment.
func (q *QualifiedName) Name() string {
	if len(q.Parts) == 0 {
		return ""
	}
	return q.Parts[len(q.Parts)-1]
}

// TupleExpr is a parenthesized, comma-separated expression list used where
// SQL allows row-value syntax: (a, b) = (1, 2), IN ((1,2),(3,4)).
type TupleExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Elements []Expr
}

func (*TupleExpr) exprNode()        {}
func (t *TupleExpr) Pos() token.Pos { return t.StartPos }
func (t *TupleExpr) End() token.Pos { return t.EndPos }
func (*TupleExpr) Kind() Kind       { return KindTupleExpr }

// ValueList is a bare comma-separated expression list with no enclosing
// parens, e.g. the row values of a VALUES clause or GROUP BY list. Most
// callers already hold these as []Expr; ValueList exists so a transform
// that needs to address "the list itself" (to replace or erase it as a
// unit) has a node to hang a position and Kind on.
type ValueList struct {
	StartPos token.Pos
	EndPos   token.Pos
	Values   []Expr
}

func (*ValueList) exprNode()        {}
func (v *ValueList) Pos() token.Pos { return v.StartPos }
func (v *ValueList) End() token.Pos { return v.EndPos }
func (*ValueList) Kind() Kind       { return KindValueList }

// TypeValueExpr is a typed literal written as type 'value' or
// type_name(args) 'value', e.g. interval '1 day', timestamp '2024-01-01'.
// CastExpr models CAST(expr AS type); TypeValueExpr models the shorthand
// prefix form that never wraps an existing expression.
type TypeValueExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Type     *DataType
	Value    string
}

func (*TypeValueExpr) exprNode()        {}
func (t *TypeValueExpr) Pos() token.Pos { return t.StartPos }
func (t *TypeValueExpr) End() token.Pos { return t.EndPos }
func (*TypeValueExpr) Kind() Kind       { return KindTypeValueExpr }

// StringSpecifierExpr wraps a RawString as an expression node, distinct
// from Literal, carrying the original specifier (E/X/U&/dollar-quote). The
// parser does not produce it, and the formatter has no rendering for it.
type StringSpecifierExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Raw      *RawString
}

func (*StringSpecifierExpr) exprNode()        {}
func (s *StringSpecifierExpr) Pos() token.Pos { return s.StartPos }
func (s *StringSpecifierExpr) End() token.Pos { return s.EndPos }
func (*StringSpecifierExpr) Kind() Kind       { return KindStringSpecifierExpr }

// InlineQueryExpr marks a subquery that appears directly as a select-list
// or argument expression rather than in FROM, IN, or EXISTS position (a
// scalar subquery). Subquery already covers the FROM/EXISTS/IN cases;
// this distinguishes the scalar-context use the selectable-column
// collector needs to recognize as "the query, not a table source".
type InlineQueryExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Select   *SelectStmt
}

func (*InlineQueryExpr) exprNode()        {}
func (i *InlineQueryExpr) Pos() token.Pos { return i.StartPos }
func (i *InlineQueryExpr) End() token.Pos { return i.EndPos }
func (*InlineQueryExpr) Kind() Kind       { return KindInlineQueryExpr }

// CommentOnStmt represents COMMENT ON <object kind> <name> IS <text|NULL>.
type CommentOnStmt struct {
	StartPos   token.Pos
	EndPos     token.Pos
	ObjectKind CommentObjectKind
	Name       *QualifiedName
	Column     string // set only when ObjectKind == CommentOnColumn
	Text       *string
}

// CommentObjectKind enumerates the object kinds COMMENT ON accepts, per
// spec scope (TABLE, COLUMN, INDEX, VIEW, FUNCTION are handled; anything
// else surfaces as an AMBIGUOUS warning rather than a parse failure).
type CommentObjectKind int

const (
	CommentOnTable CommentObjectKind = iota
	CommentOnColumn
	CommentOnIndex
	CommentOnView
	CommentOnFunction
)

func (*CommentOnStmt) statementNode()   {}
func (c *CommentOnStmt) Pos() token.Pos { return c.StartPos }
func (c *CommentOnStmt) End() token.Pos { return c.EndPos }
func (*CommentOnStmt) Kind() Kind       { return KindCommentOnStmt }
