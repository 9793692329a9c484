// Package scanner implements the GML lexical analyzer: a pure function
// from raw source bytes to a token stream (spec §4, §5, §6.1).
//
// The scanner is single-threaded, strictly sequential, and never aborts —
// malformed input produces diagnostics, not errors.
package scanner

import (
	"log/slog"
	"slices"

	"github.com/gmlfmt/gmlfmt/internal/diag"
	"github.com/gmlfmt/gmlfmt/internal/token"
	"github.com/gmlfmt/gmlfmt/internal/types"
)

// Scanner tokenizes GML source text.
type Scanner struct {
	cur         *cursor
	diagnostics []diag.Diagnostic
	pending     []token.Token
	types.Logger
}

// New creates a Scanner over source. The logger parameter is optional;
// pass nil to disable logging.
func New(source []byte, logger *slog.Logger) *Scanner {
	s := &Scanner{
		cur:    newCursor(source),
		Logger: types.Logger{L: logger},
	}
	s.Log(slog.LevelDebug, "scanner initialized", slog.Int("source_len", len(source)))
	return s
}

// Diagnostics returns a copy of all diagnostics collected so far.
// The returned slice is owned by the caller.
func (s *Scanner) Diagnostics() []diag.Diagnostic {
	return slices.Clone(s.diagnostics)
}

// Tokenize scans the entire source and returns all tokens (terminated by
// exactly one EOF) along with any diagnostics collected along the way.
// This is the scanner's primary entry point; Scan (below) wraps it as a
// single package-level call that returns the token and diagnostic slices.
func (s *Scanner) Tokenize() ([]token.Token, []diag.Diagnostic) {
	estimated := len(s.cur.source)/4 + 16
	tokens := make([]token.Token, 0, estimated)
	for {
		tok := s.nextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	s.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(s.diagnostics)))
	return tokens, s.diagnostics
}

// Scan tokenizes source in one call, the package-level form of the
// scan(source_text, out_tokens) contract in spec §6.1.
func Scan(source []byte, logger *slog.Logger) ([]token.Token, []diag.Diagnostic) {
	return New(source, logger).Tokenize()
}

func (s *Scanner) warn(code, message string, pos types.Position) {
	s.diagnostics = append(s.diagnostics, diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Code:     code,
		Message:  message,
		Pos:      pos,
	})
}

func (s *Scanner) emit(kind token.Kind, text string, pos types.Position) token.Token {
	tok := token.New(kind, text, pos)
	if s.TraceEnabled() {
		s.Trace("token",
			slog.String("kind", kind.String()),
			slog.Int("line", int(pos.Line)),
			slog.Int("column", int(pos.Column)))
	}
	return tok
}

// nextToken returns the next token, looping internally past whitespace and
// unrecognized bytes (neither of which ever produces a token of their own).
func (s *Scanner) nextToken() token.Token {
	if len(s.pending) > 0 {
		tok := s.pending[0]
		s.pending = s.pending[1:]
		return tok
	}
	for {
		if tok, ok := s.step(); ok {
			return tok
		}
	}
}

// step consumes exactly one lexeme's worth of input (or one byte of
// whitespace/garbage) and reports whether it produced a token.
func (s *Scanner) step() (token.Token, bool) {
	b, ok := s.cur.peek()
	if !ok {
		return s.emit(token.EOF, "", s.cur.position()), true
	}

	switch b {
	case ' ', '\t':
		s.cur.next()
		s.cur.bumpColumn(1)
		return token.Token{}, false
	case '\n':
		s.cur.next()
		s.cur.nextLine()
		return token.Token{}, false
	case '\r':
		s.cur.next()
		return token.Token{}, false
	}

	start := s.cur.position()

	switch {
	case isSingleCharToken(b):
		return s.scanSingleChar(b, start), true
	case b == '!' || b == '=' || b == '<' || b == '>':
		return s.scanMaybeCompound(b, start), true
	case b == '&' || b == '|' || b == '^':
		return s.scanMaybeDoubled(b, start), true
	case b == '[':
		return s.scanBracketOrIndexer(start), true
	case b == '#':
		return s.scanDirective(start), true
	case b == '"':
		return s.scanString(start), true
	case b == '.':
		if next, ok := s.cur.peekAt(1); ok && isDigit(next) {
			return s.scanNumber(start), true
		}
		s.cur.next()
		s.cur.bumpColumn(1)
		return s.emit(token.Dot, "", start), true
	case isDigit(b):
		return s.scanNumber(start), true
	case b == '$':
		return s.scanDollarHex(start), true
	case b == '/':
		return s.scanSlash(start), true
	case isIdentStart(b):
		return s.scanIdentifier(start), true
	default:
		s.cur.next()
		s.cur.bumpColumn(1)
		s.warn(diag.CodeUnrecognizedByte, unrecognizedByteMessage(b), start)
		return token.Token{}, false
	}
}

func isSingleCharToken(b byte) bool {
	switch b {
	case '(', ')', '{', '}', ',', '-', '+', ';', '*', ':', '%', ']', '?', '\\':
		return true
	default:
		return false
	}
}

func (s *Scanner) scanSingleChar(b byte, start types.Position) token.Token {
	s.cur.next()
	s.cur.bumpColumn(1)
	var kind token.Kind
	switch b {
	case '(':
		kind = token.LeftParen
	case ')':
		kind = token.RightParen
	case '{':
		kind = token.LeftBrace
	case '}':
		kind = token.RightBrace
	case ',':
		kind = token.Comma
	case '-':
		kind = token.Minus
	case '+':
		kind = token.Plus
	case ';':
		kind = token.Semicolon
	case '*':
		kind = token.Star
	case ':':
		kind = token.Colon
	case '%':
		kind = token.Mod
	case ']':
		kind = token.RightBracket
	case '?':
		kind = token.Hook
	case '\\':
		kind = token.Backslash
	}
	return s.emit(kind, "", start)
}

// scanMaybeCompound handles '!' '=' '<' '>', each of which forms a
// two-character compound when followed by '=' (spec §4.2).
func (s *Scanner) scanMaybeCompound(b byte, start types.Position) token.Token {
	s.cur.next()
	if next, ok := s.cur.peek(); ok && next == '=' {
		s.cur.next()
		s.cur.bumpColumn(2)
		switch b {
		case '!':
			return s.emit(token.BangEqual, "", start)
		case '=':
			return s.emit(token.EqualEqual, "", start)
		case '<':
			return s.emit(token.LessEqual, "", start)
		default:
			return s.emit(token.GreaterEqual, "", start)
		}
	}
	s.cur.bumpColumn(1)
	switch b {
	case '!':
		return s.emit(token.Bang, "", start)
	case '=':
		return s.emit(token.Equal, "", start)
	case '<':
		return s.emit(token.Less, "", start)
	default:
		return s.emit(token.Greater, "", start)
	}
}

// scanMaybeDoubled handles '&' '|' '^', each of which forms the doubled
// logical form when immediately repeated (spec §4.2).
func (s *Scanner) scanMaybeDoubled(b byte, start types.Position) token.Token {
	s.cur.next()
	if next, ok := s.cur.peek(); ok && next == b {
		s.cur.next()
		s.cur.bumpColumn(2)
		switch b {
		case '&':
			return s.emit(token.LogicalAnd, "", start)
		case '|':
			return s.emit(token.LogicalOr, "", start)
		default:
			return s.emit(token.LogicalXor, "", start)
		}
	}
	s.cur.bumpColumn(1)
	switch b {
	case '&':
		return s.emit(token.BinaryAnd, "", start)
	case '|':
		return s.emit(token.BinaryOr, "", start)
	default:
		return s.emit(token.BinaryXor, "", start)
	}
}

// scanBracketOrIndexer handles '[', which may begin a data-structure
// indexer token (spec §4.2).
func (s *Scanner) scanBracketOrIndexer(start types.Position) token.Token {
	s.cur.next()
	next, ok := s.cur.peek()
	if ok {
		var kind token.Kind
		switch next {
		case '@':
			kind = token.ArrayIndexer
		case '?':
			kind = token.MapIndexer
		case '|':
			kind = token.ListIndexer
		case '#':
			kind = token.GridIndexer
		}
		if kind != token.Error {
			s.cur.next()
			s.cur.bumpColumn(2)
			return s.emit(kind, "", start)
		}
	}
	s.cur.bumpColumn(1)
	return s.emit(token.LeftBracket, "", start)
}

// scanDirective handles a leading '#' (spec §4.3). It greedily consumes the
// alphanumeric/underscore run after '#' and matches the whole slice
// against the fixed directive table. On a mismatch it emits Hashtag
// immediately and, if a tail existed, queues a second Identifier token
// spanning the full "#tail" slice, anchored one column past the '#'
// (matching the original scanner's add_simple_token/add_multiple_token
// sequencing) so a downstream parser can round-trip the original bytes
// (spec §9).
func (s *Scanner) scanDirective(start types.Position) token.Token {
	hashIdx := s.cur.pos
	s.cur.next() // consume '#'
	for {
		b, ok := s.cur.peek()
		if !ok || !(isAlnum(b) || b == '_') {
			break
		}
		s.cur.next()
	}
	full := string(s.cur.source[hashIdx:s.cur.pos])

	if kind, ok := token.LookupDirective(full); ok {
		s.cur.bumpColumn(int32(len(full)))
		return s.emit(kind, "", start)
	}

	s.cur.bumpColumn(1)
	hashtagTok := s.emit(token.Hashtag, "", start)

	if tail := full[1:]; len(tail) > 0 {
		identStart := types.Position{Line: start.Line, Column: start.Column + 1}
		s.cur.bumpColumn(int32(len(tail)))
		s.pending = append(s.pending, s.emit(token.Identifier, full, identStart))
	}
	return hashtagTok
}

// scanString handles a leading '"' (spec §4.4). Unterminated strings
// (cut off by '\n' or EOF) are accepted; only the accumulated prefix is
// returned as the payload.
func (s *Scanner) scanString(start types.Position) token.Token {
	begin := s.cur.pos
	s.cur.next() // consume opening quote
	terminated := false
	for {
		b, ok := s.cur.peek()
		if !ok || b == '\n' {
			break
		}
		s.cur.next()
		if b == '"' {
			terminated = true
			break
		}
	}
	text := string(s.cur.source[begin:s.cur.pos])
	s.cur.bumpColumn(int32(len(text)))
	if !terminated {
		s.warn(diag.CodeUnterminatedString, "unterminated string literal", start)
	}
	return s.emit(token.String, text, start)
}

// scanNumber handles the three decimal-family forms (spec §4.5): a
// leading-dot fraction, a hex literal (0x...), and a plain decimal that
// may have a fractional part (including the trailing-dot form "314159.").
func (s *Scanner) scanNumber(start types.Position) token.Token {
	begin := s.cur.pos

	if b, _ := s.cur.peek(); b == '0' {
		if next, ok := s.cur.peekAt(1); ok && next == 'x' {
			s.cur.next() // '0'
			s.cur.next() // 'x'
			s.consumeHexDigits()
			return s.finishNumber(begin, start)
		}
	}

	if b, _ := s.cur.peek(); b == '.' {
		s.cur.next() // leading '.'
		s.consumeDecimalDigits()
		return s.finishNumber(begin, start)
	}

	s.consumeDecimalDigits()
	if b, ok := s.cur.peek(); ok && b == '.' {
		s.cur.next()
		s.consumeDecimalDigits() // may consume zero digits: "314159." is valid
	}
	return s.finishNumber(begin, start)
}

func (s *Scanner) finishNumber(begin int, start types.Position) token.Token {
	text := string(s.cur.source[begin:s.cur.pos])
	s.cur.bumpColumn(int32(len(text)))
	return s.emit(token.Number, text, start)
}

func (s *Scanner) consumeDecimalDigits() {
	for {
		b, ok := s.cur.peek()
		if !ok || !isDigit(b) {
			return
		}
		s.cur.next()
	}
}

func (s *Scanner) consumeHexDigits() {
	for {
		b, ok := s.cur.peek()
		if !ok || !isHexDigit(b) {
			return
		}
		s.cur.next()
	}
}

// scanDollarHex handles the secondary "$FF"-style hex literal (spec §4.2,
// §6.3). A bare "$" with no following hex digits is itself a valid Number
// token, tolerating malformed input without aborting.
func (s *Scanner) scanDollarHex(start types.Position) token.Token {
	begin := s.cur.pos
	s.cur.next() // consume '$'
	s.consumeHexDigits()
	return s.finishNumber(begin, start)
}

// scanSlash handles '/', which may introduce a line comment, a multiline
// comment, or stand alone as division (spec §4.2, §4.6).
func (s *Scanner) scanSlash(start types.Position) token.Token {
	begin := s.cur.pos
	s.cur.next() // consume first '/'
	next, ok := s.cur.peek()
	switch {
	case ok && next == '/':
		return s.scanLineComment(begin, start)
	case ok && next == '*':
		return s.scanMultilineComment(begin, start)
	default:
		s.cur.bumpColumn(1)
		return s.emit(token.Slash, "", start)
	}
}

func (s *Scanner) scanLineComment(begin int, start types.Position) token.Token {
	for {
		b, ok := s.cur.peek()
		if !ok || b == '\n' {
			break
		}
		s.cur.next()
	}
	text := string(s.cur.source[begin:s.cur.pos])
	s.cur.bumpColumn(int32(len(text)))
	return s.emit(token.Comment, text, start)
}

// scanMultilineComment handles "/*...*/" (spec §4.6). It tracks newlines
// inside the comment body so that, once the comment closes (or the input
// ends), the scanner's column is resynced to "current index - last line
// start" rather than the comment's own starting column.
func (s *Scanner) scanMultilineComment(begin int, start types.Position) token.Token {
	s.cur.next() // consume '*'
	lastLineStart := -1
	closed := false
	for {
		b, ok := s.cur.peek()
		if !ok {
			break
		}
		if b == '\n' {
			s.cur.next()
			s.cur.nextLine()
			lastLineStart = s.cur.pos
			continue
		}
		if b == '*' {
			if after, ok := s.cur.peekAt(1); ok && after == '/' {
				s.cur.next()
				s.cur.next()
				closed = true
				break
			}
		}
		s.cur.next()
	}

	text := string(s.cur.source[begin:s.cur.pos])
	if lastLineStart >= 0 {
		s.cur.setColumn(int32(s.cur.pos - lastLineStart))
	} else {
		s.cur.bumpColumn(int32(len(text)))
	}
	if !closed {
		s.warn(diag.CodeUnterminatedComment, "unterminated multiline comment", start)
	}
	return s.emit(token.MultilineComment, text, start)
}

// scanIdentifier handles a leading [A-Za-z_] (spec §4.7): identifiers,
// keywords, and word-alias operators share one greedy scan, disambiguated
// by a table lookup on the finished lexeme.
func (s *Scanner) scanIdentifier(start types.Position) token.Token {
	begin := s.cur.pos
	for {
		b, ok := s.cur.peek()
		if !ok || !(isAlnum(b) || b == '_') {
			break
		}
		s.cur.next()
	}
	text := string(s.cur.source[begin:s.cur.pos])
	s.cur.bumpColumn(int32(len(text)))

	if kind, ok := token.LookupKeyword(text); ok {
		return s.emit(kind, "", start)
	}
	return s.emit(token.Identifier, text, start)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func isIdentStart(b byte) bool {
	return isAlpha(b) || b == '_'
}

func unrecognizedByteMessage(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return "unrecognized character: " + string(b)
	}
	const hexDigits = "0123456789abcdef"
	return "unrecognized byte: 0x" + string([]byte{hexDigits[b>>4], hexDigits[b&0xf]})
}
