// Package pgerror defines the error taxonomy shared by every component of
// this module, generalizing the teacher's single parser.ParseError into the
// full disposition table of spec.md §7.
package pgerror

import (
	"fmt"

	"github.com/pgsqlast/pgsqlast/token"
)

// Kind identifies the class of failure. It is not a Go type — every Kind
// produces the same Error struct — but a tag consumers can switch on.
type Kind int

const (
	// LexFailed means the character stream could not be tokenised.
	LexFailed Kind = iota
	// ParseFailed means the tokens parse to no known statement.
	ParseFailed
	// UnsupportedDDL means the statement was recognised but is
	// intentionally not built into a full AST (e.g. GRANT).
	UnsupportedDDL
	// Ambiguous means a COMMENT ON could not be resolved to a target, or a
	// "*" in a select list could not be expanded to columns.
	Ambiguous
	// InvalidRawString means raw-string validation failed at format time.
	InvalidRawString
	// CTENameConflict means two CTEs share a name with different bodies.
	CTENameConflict
	// CTECycle means a non-recursive cycle was detected among CTEs.
	CTECycle
	// EmptySelect means parameter removal would empty a SELECT clause.
	EmptySelect
)

func (k Kind) String() string {
	switch k {
	case LexFailed:
		return "LEX_FAILED"
	case ParseFailed:
		return "PARSE_FAILED"
	case UnsupportedDDL:
		return "UNSUPPORTED_DDL"
	case Ambiguous:
		return "AMBIGUOUS"
	case InvalidRawString:
		return "INVALID_RAW_STRING"
	case CTENameConflict:
		return "CTE_NAME_CONFLICT"
	case CTECycle:
		return "CTE_CYCLE"
	case EmptySelect:
		return "EMPTY_SELECT"
	default:
		return "UNKNOWN"
	}
}

// Fatal reports whether this kind aborts the statement/pass it occurred in,
// as opposed to being a recoverable warning (UnsupportedDDL, Ambiguous).
func (k Kind) Fatal() bool {
	switch k {
	case UnsupportedDDL, Ambiguous:
		return false
	default:
		return true
	}
}

// Error is the shape every failure in this module takes: a kind, a
// message, and the optional context a caller (or an external driver) needs
// to report it well.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Pos // zero value if not applicable
	Preview string    // statement preview, see Preview()
	File    string     // optional, set by an external driver
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New constructs an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithPos attaches a source position to an Error, returning the same
// pointer for chaining.
func (e *Error) WithPos(pos token.Pos) *Error {
	e.Pos = pos
	return e
}

// WithPreview attaches a statement preview, see Preview().
func (e *Error) WithPreview(sql string) *Error {
	e.Preview = Preview(sql)
	return e
}

// WithFile attaches the file path an external driver fed this SQL from.
func (e *Error) WithFile(path string) *Error {
	e.File = path
	return e
}

// previewMaxLen bounds the length of a statement preview (spec.md §4.3:
// "≤200 chars, whitespace collapsed").
const previewMaxLen = 200

// Preview renders a single-line, whitespace-collapsed, length-capped
// rendering of a SQL statement for use in error and warning messages.
func Preview(sql string) string {
	var collapsed []byte
	lastWasSpace := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if lastWasSpace {
				continue
			}
			c = ' '
			lastWasSpace = true
		} else {
			lastWasSpace = false
		}
		collapsed = append(collapsed, c)
	}
	// The cap applies to the collapsed length, not the raw input length:
	// whitespace collapsing alone must never produce a spurious "...".
	if len(collapsed) <= previewMaxLen {
		return string(collapsed)
	}
	return string(collapsed[:previewMaxLen-3]) + "..."
}

// Unhandled panics naming the offending AST kind tag. Dispatching to an
// unknown kind in the visitor framework is a fatal programming error, not a
// recoverable condition — see spec.md §4.4 and the UNHANDLED_KIND taxonomy
// entry.
func Unhandled(kind fmt.Stringer) {
	panic(fmt.Sprintf("UNHANDLED_KIND: no visitor handler registered for kind %s", kind))
}
