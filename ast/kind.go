package ast

// Kind tags every node with its concrete type, the way the teacher's
// ast/pool.go switches on concrete type to return nodes to their pool. The
// visit package dispatches on Kind instead of a Go type switch so that
// callers outside this package can register handlers by tag without
// reflection.
type Kind int

const (
	KindTableName Kind = iota
	KindAliasedTableExpr
	KindJoinExpr
	KindParenTableExpr
	KindOrderByExpr
	KindLimit
	KindAliasedExpr
	KindStarExpr
	KindWindowSpec
	KindTableList
	KindValuesStmt
	KindColName
	KindLiteral
	KindBinaryExpr
	KindUnaryExpr
	KindParenExpr
	KindFuncExpr
	KindCastExpr
	KindCaseExpr
	KindInExpr
	KindBetweenExpr
	KindLikeExpr
	KindIsExpr
	KindSubquery
	KindExistsExpr
	KindParam
	KindArrayExpr
	KindSubscriptExpr
	KindIntervalExpr
	KindExtractExpr
	KindTrimExpr
	KindSubstringExpr
	KindPositionExpr
	KindCollateExpr
	KindSelectStmt
	KindInsertStmt
	KindUpdateStmt
	KindDeleteStmt
	KindSetOp
	KindCreateTableStmt
	KindAlterTableStmt
	KindDropTableStmt
	KindCreateIndexStmt
	KindDropIndexStmt
	KindTruncateStmt
	KindExplainStmt
	KindRawString
	KindQualifiedName
	KindTupleExpr
	KindValueList
	KindTypeValueExpr
	KindStringSpecifierExpr
	KindInlineQueryExpr
	KindCommentOnStmt
)

var kindNames = [...]string{
	KindTableName:           "TableName",
	KindAliasedTableExpr:    "AliasedTableExpr",
	KindJoinExpr:            "JoinExpr",
	KindParenTableExpr:      "ParenTableExpr",
	KindOrderByExpr:         "OrderByExpr",
	KindLimit:               "Limit",
	KindAliasedExpr:         "AliasedExpr",
	KindStarExpr:            "StarExpr",
	KindWindowSpec:          "WindowSpec",
	KindTableList:           "TableList",
	KindValuesStmt:          "ValuesStmt",
	KindColName:             "ColName",
	KindLiteral:             "Literal",
	KindBinaryExpr:          "BinaryExpr",
	KindUnaryExpr:           "UnaryExpr",
	KindParenExpr:           "ParenExpr",
	KindFuncExpr:            "FuncExpr",
	KindCastExpr:            "CastExpr",
	KindCaseExpr:            "CaseExpr",
	KindInExpr:              "InExpr",
	KindBetweenExpr:         "BetweenExpr",
	KindLikeExpr:            "LikeExpr",
	KindIsExpr:              "IsExpr",
	KindSubquery:            "Subquery",
	KindExistsExpr:          "ExistsExpr",
	KindParam:               "Param",
	KindArrayExpr:           "ArrayExpr",
	KindSubscriptExpr:       "SubscriptExpr",
	KindIntervalExpr:        "IntervalExpr",
	KindExtractExpr:         "ExtractExpr",
	KindTrimExpr:            "TrimExpr",
	KindSubstringExpr:       "SubstringExpr",
	KindPositionExpr:        "PositionExpr",
	KindCollateExpr:         "CollateExpr",
	KindSelectStmt:          "SelectStmt",
	KindInsertStmt:          "InsertStmt",
	KindUpdateStmt:          "UpdateStmt",
	KindDeleteStmt:          "DeleteStmt",
	KindSetOp:               "SetOp",
	KindCreateTableStmt:     "CreateTableStmt",
	KindAlterTableStmt:      "AlterTableStmt",
	KindDropTableStmt:       "DropTableStmt",
	KindCreateIndexStmt:     "CreateIndexStmt",
	KindDropIndexStmt:       "DropIndexStmt",
	KindTruncateStmt:        "TruncateStmt",
	KindExplainStmt:         "ExplainStmt",
	KindRawString:           "RawString",
	KindQualifiedName:       "QualifiedName",
	KindTupleExpr:           "TupleExpr",
	KindValueList:           "ValueList",
	KindTypeValueExpr:       "TypeValueExpr",
	KindStringSpecifierExpr: "StringSpecifierExpr",
	KindInlineQueryExpr:     "InlineQueryExpr",
	KindCommentOnStmt:       "CommentOnStmt",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// Tagged is implemented by every concrete node type in this package. The
// visit package's dispatch table is keyed on Tagged.Kind(), not on a type
// switch, so it can live outside this package without an import cycle.
type Tagged interface {
	Node
	Kind() Kind
}

func (*TableName) Kind() Kind           { return KindTableName }
func (*AliasedTableExpr) Kind() Kind    { return KindAliasedTableExpr }
func (*JoinExpr) Kind() Kind            { return KindJoinExpr }
func (*ParenTableExpr) Kind() Kind      { return KindParenTableExpr }
func (*OrderByExpr) Kind() Kind         { return KindOrderByExpr }
func (*Limit) Kind() Kind               { return KindLimit }
func (*AliasedExpr) Kind() Kind         { return KindAliasedExpr }
func (*StarExpr) Kind() Kind            { return KindStarExpr }
func (*WindowSpec) Kind() Kind          { return KindWindowSpec }
func (*TableList) Kind() Kind           { return KindTableList }
func (*ValuesStmt) Kind() Kind          { return KindValuesStmt }
func (*ColName) Kind() Kind             { return KindColName }
func (*Literal) Kind() Kind             { return KindLiteral }
func (*BinaryExpr) Kind() Kind          { return KindBinaryExpr }
func (*UnaryExpr) Kind() Kind           { return KindUnaryExpr }
func (*ParenExpr) Kind() Kind           { return KindParenExpr }
func (*FuncExpr) Kind() Kind            { return KindFuncExpr }
func (*CastExpr) Kind() Kind            { return KindCastExpr }
func (*CaseExpr) Kind() Kind            { return KindCaseExpr }
func (*InExpr) Kind() Kind              { return KindInExpr }
func (*BetweenExpr) Kind() Kind         { return KindBetweenExpr }
func (*LikeExpr) Kind() Kind            { return KindLikeExpr }
func (*IsExpr) Kind() Kind              { return KindIsExpr }
func (*Subquery) Kind() Kind            { return KindSubquery }
func (*ExistsExpr) Kind() Kind          { return KindExistsExpr }
func (*Param) Kind() Kind               { return KindParam }
func (*ArrayExpr) Kind() Kind           { return KindArrayExpr }
func (*SubscriptExpr) Kind() Kind       { return KindSubscriptExpr }
func (*IntervalExpr) Kind() Kind        { return KindIntervalExpr }
func (*ExtractExpr) Kind() Kind         { return KindExtractExpr }
func (*TrimExpr) Kind() Kind            { return KindTrimExpr }
func (*SubstringExpr) Kind() Kind       { return KindSubstringExpr }
func (*PositionExpr) Kind() Kind        { return KindPositionExpr }
func (*CollateExpr) Kind() Kind         { return KindCollateExpr }
func (*SelectStmt) Kind() Kind          { return KindSelectStmt }
func (*InsertStmt) Kind() Kind          { return KindInsertStmt }
func (*UpdateStmt) Kind() Kind          { return KindUpdateStmt }
func (*DeleteStmt) Kind() Kind          { return KindDeleteStmt }
func (*SetOp) Kind() Kind               { return KindSetOp }
func (*CreateTableStmt) Kind() Kind     { return KindCreateTableStmt }
func (*AlterTableStmt) Kind() Kind      { return KindAlterTableStmt }
func (*DropTableStmt) Kind() Kind       { return KindDropTableStmt }
func (*CreateIndexStmt) Kind() Kind     { return KindCreateIndexStmt }
func (*DropIndexStmt) Kind() Kind       { return KindDropIndexStmt }
func (*TruncateStmt) Kind() Kind        { return KindTruncateStmt }
func (*ExplainStmt) Kind() Kind         { return KindExplainStmt }
