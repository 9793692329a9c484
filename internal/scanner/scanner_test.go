package scanner

import (
	"testing"

	"github.com/gmlfmt/gmlfmt/internal/testutil"
	"github.com/gmlfmt/gmlfmt/internal/token"
	"github.com/gmlfmt/gmlfmt/internal/types"
)

func tokenKinds(source string) []token.Kind {
	tokens, _ := Scan([]byte(source), nil)
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func tokenTexts(source string) []string {
	tokens, _ := Scan([]byte(source), nil)
	var texts []string
	for _, tok := range tokens {
		if tok.Kind != token.EOF {
			texts = append(texts, tok.Text)
		}
	}
	return texts
}

func positionsOf(tokens []token.Token) []types.Position {
	pos := make([]types.Position, len(tokens))
	for i, tok := range tokens {
		pos[i] = tok.Pos
	}
	return pos
}

func TestEmptyInput(t *testing.T) {
	tokens, diags := Scan([]byte(""), nil)
	testutil.Len(t, tokens, 1, "empty input token count")
	testutil.Equal(t, token.EOF, tokens[0].Kind, "empty input kind")
	testutil.Equal(t, types.Position{Line: 0, Column: 0}, tokens[0].Pos, "empty input position")
	testutil.Len(t, diags, 0, "empty input diagnostics")
}

func TestWhitespaceOnly(t *testing.T) {
	kinds := tokenKinds("   \t\n\r\n  ")
	testutil.SliceEqual(t, []token.Kind{token.EOF}, kinds, "whitespace only")
}

// S1 — symbols.
func TestSymbols(t *testing.T) {
	tokens, _ := Scan([]byte("(){}[] !=="), nil)
	wantKinds := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.LeftBracket, token.RightBracket, token.BangEqual, token.Equal, token.EOF,
	}
	gotKinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		gotKinds[i] = tok.Kind
	}
	testutil.SliceEqual(t, wantKinds, gotKinds, "S1 kinds")

	wantPos := []types.Position{
		{Line: 0, Column: 0}, {Line: 0, Column: 1}, {Line: 0, Column: 2},
		{Line: 0, Column: 3}, {Line: 0, Column: 4}, {Line: 0, Column: 5},
		{Line: 0, Column: 7}, {Line: 0, Column: 9}, {Line: 0, Column: 10},
	}
	testutil.SliceEqual(t, wantPos, positionsOf(tokens), "S1 positions")
}

// S2 — strings, including the unterminated case.
func TestStrings(t *testing.T) {
	tokens, _ := Scan([]byte("\"good\"\n\"bad\n\"good2\""), nil)
	wantKinds := []token.Kind{token.String, token.String, token.String, token.EOF}
	gotKinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		gotKinds[i] = tok.Kind
	}
	testutil.SliceEqual(t, wantKinds, gotKinds, "S2 kinds")

	wantTexts := []string{`"good"`, `"bad`, `"good2"`}
	gotTexts := []string{tokens[0].Text, tokens[1].Text, tokens[2].Text}
	testutil.SliceEqual(t, wantTexts, gotTexts, "S2 texts")

	wantPos := []types.Position{
		{Line: 0, Column: 0}, {Line: 1, Column: 0}, {Line: 2, Column: 0}, {Line: 2, Column: 7},
	}
	testutil.SliceEqual(t, wantPos, positionsOf(tokens), "S2 positions")
}

func TestUnterminatedStringEmitsDiagnostic(t *testing.T) {
	_, diags := Scan([]byte("\"bad\n"), nil)
	testutil.Len(t, diags, 1, "diagnostic count")
	testutil.Equal(t, "unterminated-string", diags[0].Code, "diagnostic code")
}

// S3 — numbers.
func TestNumbers(t *testing.T) {
	src := "314159\n3.14159\n314159.\n.314159\n0x0A\n$FF"
	tokens, _ := Scan([]byte(src), nil)
	wantKinds := []token.Kind{
		token.Number, token.Number, token.Number, token.Number, token.Number, token.Number, token.EOF,
	}
	gotKinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		gotKinds[i] = tok.Kind
	}
	testutil.SliceEqual(t, wantKinds, gotKinds, "S3 kinds")

	wantTexts := []string{"314159", "3.14159", "314159.", ".314159", "0x0A", "$FF"}
	var gotTexts []string
	for _, tok := range tokens {
		if tok.Kind != token.EOF {
			gotTexts = append(gotTexts, tok.Text)
		}
	}
	testutil.SliceEqual(t, wantTexts, gotTexts, "S3 texts")

	wantPos := []types.Position{
		{Line: 0, Column: 0}, {Line: 1, Column: 0}, {Line: 2, Column: 0},
		{Line: 3, Column: 0}, {Line: 4, Column: 0}, {Line: 5, Column: 0}, {Line: 5, Column: 3},
	}
	testutil.SliceEqual(t, wantPos, positionsOf(tokens), "S3 positions")
}

func TestHexWithNoDigits(t *testing.T) {
	texts := tokenTexts("0x")
	testutil.SliceEqual(t, []string{"0x"}, texts, "bare 0x")
}

func TestBareDollar(t *testing.T) {
	texts := tokenTexts("$")
	testutil.SliceEqual(t, []string{"$"}, texts, "bare $")
}

// S4 — indexers.
func TestIndexers(t *testing.T) {
	tokens, _ := Scan([]byte("[ [? [# [| [@ ]"), nil)
	wantKinds := []token.Kind{
		token.LeftBracket, token.MapIndexer, token.GridIndexer, token.ListIndexer,
		token.ArrayIndexer, token.RightBracket, token.EOF,
	}
	gotKinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		gotKinds[i] = tok.Kind
	}
	testutil.SliceEqual(t, wantKinds, gotKinds, "S4 kinds")

	wantPos := []types.Position{
		{Line: 0, Column: 0}, {Line: 0, Column: 2}, {Line: 0, Column: 5}, {Line: 0, Column: 8},
		{Line: 0, Column: 11}, {Line: 0, Column: 14}, {Line: 0, Column: 15},
	}
	testutil.SliceEqual(t, wantPos, positionsOf(tokens), "S4 positions")
}

// S5 — directives.
func TestDirectives(t *testing.T) {
	src := "#region Name\n#macro X 0\n#endregion"
	tokens, _ := Scan([]byte(src), nil)
	wantKinds := []token.Kind{
		token.RegionBegin, token.Identifier, token.Macro, token.Identifier,
		token.Number, token.RegionEnd, token.EOF,
	}
	gotKinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		gotKinds[i] = tok.Kind
	}
	testutil.SliceEqual(t, wantKinds, gotKinds, "S5 kinds")

	wantPos := []types.Position{
		{Line: 0, Column: 0}, {Line: 0, Column: 8}, {Line: 1, Column: 0}, {Line: 1, Column: 7},
		{Line: 1, Column: 9}, {Line: 2, Column: 0}, {Line: 2, Column: 10},
	}
	testutil.SliceEqual(t, wantPos, positionsOf(tokens), "S5 positions")

	testutil.Equal(t, "Name", tokens[1].Text, "region name payload")
	testutil.Equal(t, "X", tokens[3].Text, "macro name payload")
}

// S6 — comments.
func TestComments(t *testing.T) {
	src := "// a\nvar x = 20; // b\n/* c */"
	tokens, _ := Scan([]byte(src), nil)
	wantKinds := []token.Kind{
		token.Comment, token.Var, token.Identifier, token.Equal, token.Number,
		token.Semicolon, token.Comment, token.MultilineComment, token.EOF,
	}
	gotKinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		gotKinds[i] = tok.Kind
	}
	testutil.SliceEqual(t, wantKinds, gotKinds, "S6 kinds")

	wantPos := []types.Position{
		{Line: 0, Column: 0}, {Line: 1, Column: 0}, {Line: 1, Column: 4}, {Line: 1, Column: 6},
		{Line: 1, Column: 8}, {Line: 1, Column: 10}, {Line: 1, Column: 12}, {Line: 2, Column: 0},
		{Line: 2, Column: 7},
	}
	testutil.SliceEqual(t, wantPos, positionsOf(tokens), "S6 positions")
}

func TestUnterminatedMultilineCommentRunsToEOF(t *testing.T) {
	src := "var x;\n/* unterminated"
	tokens, diags := Scan([]byte(src), nil)
	last := tokens[len(tokens)-2] // the comment; EOF follows
	testutil.Equal(t, token.MultilineComment, last.Kind, "unterminated comment kind")
	testutil.Equal(t, "/* unterminated", last.Text, "unterminated comment text")
	testutil.Len(t, diags, 1, "diagnostic count")
	testutil.Equal(t, "unterminated-comment", diags[0].Code, "diagnostic code")
}

func TestMultilineCommentColumnResyncsAfterClose(t *testing.T) {
	src := "/* line one\nline two */ x"
	tokens, _ := Scan([]byte(src), nil)
	testutil.Equal(t, token.MultilineComment, tokens[0].Kind, "comment kind")
	testutil.Equal(t, types.Position{Line: 0, Column: 0}, tokens[0].Pos, "comment start position")
	testutil.Equal(t, token.Identifier, tokens[1].Kind, "trailing identifier kind")
	testutil.Equal(t, int32(1), tokens[1].Pos.Line, "trailing identifier line")
	testutil.Equal(t, "x", tokens[1].Text, "trailing identifier text")
}

func TestKeywordsAndWordAliases(t *testing.T) {
	kinds := tokenKinds("var if else return for repeat while do until switch case default true false and or not mod div")
	want := []token.Kind{
		token.Var, token.If, token.Else, token.Return, token.For, token.Repeat,
		token.While, token.Do, token.Until, token.Switch, token.Case, token.DefaultCase,
		token.True, token.False, token.AndAlias, token.OrAlias, token.NotAlias,
		token.ModAlias, token.Div, token.EOF,
	}
	testutil.SliceEqual(t, want, kinds, "keyword/alias kinds")
}

func TestBreakAndExitAreIdentifiers(t *testing.T) {
	kinds := tokenKinds("break exit")
	testutil.SliceEqual(t, []token.Kind{token.Identifier, token.Identifier, token.EOF}, kinds, "break/exit kinds")
}

func TestLogicalAndBitwiseOperators(t *testing.T) {
	kinds := tokenKinds("&& || ^^ & | ^")
	want := []token.Kind{
		token.LogicalAnd, token.LogicalOr, token.LogicalXor,
		token.BinaryAnd, token.BinaryOr, token.BinaryXor, token.EOF,
	}
	testutil.SliceEqual(t, want, kinds, "logical/bitwise kinds")
}

func TestComparisonOperators(t *testing.T) {
	kinds := tokenKinds("< <= > >= = == ! !=")
	want := []token.Kind{
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.Equal, token.EqualEqual, token.Bang, token.BangEqual, token.EOF,
	}
	testutil.SliceEqual(t, want, kinds, "comparison kinds")
}

func TestDotAlone(t *testing.T) {
	kinds := tokenKinds("a.b")
	testutil.SliceEqual(t, []token.Kind{token.Identifier, token.Dot, token.Identifier, token.EOF}, kinds, "member access kinds")
}

func TestStrayHashtagFollowedByWhitespace(t *testing.T) {
	kinds := tokenKinds("# x")
	testutil.SliceEqual(t, []token.Kind{token.Hashtag, token.Identifier, token.EOF}, kinds, "stray hashtag kinds")
}

func TestStrayHashtagFollowedByIdentifierChars(t *testing.T) {
	tokens, _ := Scan([]byte("#foo"), nil)
	wantKinds := []token.Kind{token.Hashtag, token.Identifier, token.EOF}
	gotKinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		gotKinds[i] = tok.Kind
	}
	testutil.SliceEqual(t, wantKinds, gotKinds, "stray hashtag+tail kinds")
	testutil.Equal(t, "#foo", tokens[1].Text, "stray hashtag+tail payload")
	testutil.Equal(t, types.Position{Line: 0, Column: 0}, tokens[0].Pos, "hashtag position")
	testutil.Equal(t, types.Position{Line: 0, Column: 1}, tokens[1].Pos, "identifier starts one column past the hashtag")
}

func TestUnrecognizedByteIsSkippedWithDiagnostic(t *testing.T) {
	tokens, diags := Scan([]byte("a @ b"), nil)
	wantKinds := []token.Kind{token.Identifier, token.Identifier, token.EOF}
	gotKinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		gotKinds[i] = tok.Kind
	}
	testutil.SliceEqual(t, wantKinds, gotKinds, "unrecognized byte kinds")
	testutil.Len(t, diags, 1, "diagnostic count")
	testutil.Equal(t, "unrecognized-byte", diags[0].Code, "diagnostic code")
}

func TestTrailingDotNumber(t *testing.T) {
	texts := tokenTexts("314159.")
	testutil.SliceEqual(t, []string{"314159."}, texts, "trailing dot number")
}

func TestDeterministicScan(t *testing.T) {
	const src = "var x = [? 1, \"two\", 3.0 ] // trailing\n/* block */"
	tokensA, diagsA := Scan([]byte(src), nil)
	tokensB, diagsB := Scan([]byte(src), nil)
	testutil.SliceEqual(t, tokensA, tokensB, "repeated scan must be deterministic")
	testutil.Equal(t, len(diagsA), len(diagsB), "repeated scan diagnostics must be deterministic")
}

func TestTokensAreMonotonicallyOrdered(t *testing.T) {
	const src = "var x = 1;\nif (x == 2) {\n  return x /* note */ + 1; // done\n}\n"
	tokens, _ := Scan([]byte(src), nil)
	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1].Pos, tokens[i].Pos
		if cur.Less(prev) {
			t.Fatalf("token %d at %s precedes token %d at %s", i, cur, i-1, prev)
		}
	}
}

func TestCRLFLineEndings(t *testing.T) {
	kinds := tokenKinds("var x;\r\nvar y;\r\n")
	want := []token.Kind{
		token.Var, token.Identifier, token.Semicolon,
		token.Var, token.Identifier, token.Semicolon, token.EOF,
	}
	testutil.SliceEqual(t, want, kinds, "CRLF kinds")

	tokens, _ := Scan([]byte("var x;\r\nvar y;\r\n"), nil)
	testutil.Equal(t, int32(1), tokens[3].Pos.Line, "second line's var starts on line 1")
	testutil.Equal(t, int32(0), tokens[3].Pos.Column, "second line's var starts at column 0")
}
