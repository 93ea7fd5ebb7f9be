package pgerror

import (
	"strings"
	"testing"

	"github.com/pgsqlast/pgsqlast/token"
)

func TestKindStringRoundTripsEveryConstant(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{LexFailed, "LEX_FAILED"},
		{ParseFailed, "PARSE_FAILED"},
		{UnsupportedDDL, "UNSUPPORTED_DDL"},
		{Ambiguous, "AMBIGUOUS"},
		{InvalidRawString, "INVALID_RAW_STRING"},
		{CTENameConflict, "CTE_NAME_CONFLICT"},
		{CTECycle, "CTE_CYCLE"},
		{EmptySelect, "EMPTY_SELECT"},
		{Kind(999), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindFatal(t *testing.T) {
	recoverable := map[Kind]bool{UnsupportedDDL: true, Ambiguous: true}
	all := []Kind{LexFailed, ParseFailed, UnsupportedDDL, Ambiguous, InvalidRawString, CTENameConflict, CTECycle, EmptySelect}
	for _, k := range all {
		want := !recoverable[k]
		if got := k.Fatal(); got != want {
			t.Errorf("%s.Fatal() = %v, want %v", k, got, want)
		}
	}
}

func TestErrorStringWithoutPos(t *testing.T) {
	e := New(ParseFailed, "unexpected token %s", "FROM")
	want := "PARSE_FAILED: unexpected token FROM"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithPos(t *testing.T) {
	e := New(LexFailed, "bad escape").WithPos(token.Pos{Line: 3, Column: 7})
	want := "LEX_FAILED: bad escape (line 3, column 7)"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWithPosReturnsSamePointerForChaining(t *testing.T) {
	e := New(CTECycle, "cycle")
	chained := e.WithPos(token.Pos{Line: 1, Column: 1})
	if chained != e {
		t.Error("WithPos should return the same *Error for chaining")
	}
}

func TestWithFileSetsFile(t *testing.T) {
	e := New(ParseFailed, "boom").WithFile("migrations/0001.sql")
	if e.File != "migrations/0001.sql" {
		t.Errorf("File = %q, want %q", e.File, "migrations/0001.sql")
	}
}

func TestWithPreviewDelegatesToPreview(t *testing.T) {
	e := New(ParseFailed, "boom").WithPreview("select   1")
	if e.Preview != "select 1" {
		t.Errorf("Preview = %q, want %q", e.Preview, "select 1")
	}
}

func TestPreviewCollapsesWhitespaceWithoutTruncating(t *testing.T) {
	got := Preview("select   1,\n\t2   from   t")
	want := "select 1, 2 from t"
	if got != want {
		t.Errorf("Preview = %q, want %q", got, want)
	}
	if strings.HasSuffix(got, "...") {
		t.Error("short input must not get an ellipsis merely from whitespace collapsing")
	}
}

func TestPreviewTruncatesLongInputWithEllipsis(t *testing.T) {
	sql := "select " + strings.Repeat("a", 300)
	got := Preview(sql)
	if len(got) != previewMaxLen {
		t.Fatalf("len(Preview) = %d, want %d", len(got), previewMaxLen)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated preview to end in ..., got %q", got)
	}
}

func TestPreviewExactlyAtCapNoEllipsis(t *testing.T) {
	sql := strings.Repeat("a", previewMaxLen)
	got := Preview(sql)
	if got != sql {
		t.Errorf("Preview of exactly-%d-char input should be unchanged, got len %d", previewMaxLen, len(got))
	}
	if strings.HasSuffix(got, "...") {
		t.Error("input exactly at the cap must not be truncated")
	}
}

func TestUnhandledPanicsWithKindName(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Unhandled to panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "some.Kind") || !strings.Contains(msg, "UNHANDLED_KIND") {
			t.Errorf("panic message = %v, want it to mention UNHANDLED_KIND and the kind name", r)
		}
	}()
	Unhandled(stringerKind("some.Kind"))
}

type stringerKind string

func (s stringerKind) String() string { return string(s) }
