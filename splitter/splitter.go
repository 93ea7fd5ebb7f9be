// Package splitter splits a multi-statement SQL script into individually
// parseable statement texts, without reformatting them.
//
// It is string- and comment-aware by construction: it drives the same
// lexer.Lexer the parser uses to find the source, so a semicolon inside a
// quoted string, a quoted identifier, a dollar-quoted string, a line
// comment, or a block comment is never mistaken for a statement terminator
// — those already come back from the lexer as a single STRING/IDENT/COMMENT
// token, never as individual bytes.
package splitter

import (
	"strings"

	"github.com/pgsqlast/pgsqlast/lexer"
	"github.com/pgsqlast/pgsqlast/token"
)

// Statement is one segment of a split script.
type Statement struct {
	// Index is the 1-based position of this statement in the input.
	Index int
	// Text is the original source text of the statement, trimmed of
	// leading/trailing whitespace. No reformatting is applied.
	Text string
	// Empty is true when the segment contains no non-trivia tokens (it is
	// whitespace-only or comment-only).
	Empty bool
}

// Splitter streams statements out of a SQL script one at a time. The parser
// consumes a whole statement at once, but Splitter itself may produce each
// statement before the rest of the input has been scanned.
type Splitter struct {
	input    string
	lex      *lexer.Lexer
	segStart int
	index    int
	done     bool
}

// New creates a Splitter over the given SQL script.
func New(input string) *Splitter {
	return &Splitter{
		input: input,
		lex:   lexer.New(input),
	}
}

// Next returns the next statement, or ok=false once the input is exhausted.
func (s *Splitter) Next() (Statement, bool) {
	if s.done {
		return Statement{}, false
	}

	hasNonTrivia := false
	for {
		item := s.lex.Next()
		if item.Type == token.EOF {
			s.done = true
			if s.segStart >= len(s.input) {
				return Statement{}, false
			}
			return s.flush(len(s.input), hasNonTrivia), true
		}
		if item.Type == token.SEMICOLON {
			stmt := s.flush(item.Pos.Offset, hasNonTrivia)
			s.segStart = item.Pos.Offset + 1
			return stmt, true
		}
		if item.Type != token.COMMENT {
			hasNonTrivia = true
		}
	}
}

func (s *Splitter) flush(end int, hasNonTrivia bool) Statement {
	s.index++
	text := strings.TrimSpace(s.input[s.segStart:end])
	return Statement{Index: s.index, Text: text, Empty: !hasNonTrivia}
}

// Split splits sql into its component statements in one call.
func Split(sql string) []Statement {
	sp := New(sql)
	var stmts []Statement
	for {
		stmt, ok := sp.Next()
		if !ok {
			break
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}
