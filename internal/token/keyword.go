package token

import "sort"

// keywords is the sorted keyword table for binary search (spec §4.7).
// IMPORTANT: this slice MUST remain sorted lexicographically by text.
var keywords = []struct {
	text string
	kind Kind
}{
	{"and", AndAlias},
	{"case", Case},
	{"default", DefaultCase},
	{"div", Div},
	{"do", Do},
	{"else", Else},
	{"false", False},
	{"for", For},
	{"if", If},
	{"mod", ModAlias},
	{"not", NotAlias},
	{"or", OrAlias},
	{"repeat", Repeat},
	{"return", Return},
	{"switch", Switch},
	{"true", True},
	{"until", Until},
	{"var", Var},
	{"while", While},
}

// LookupKeyword returns the Kind for a reserved word, or (Error, false) if
// the text is not one of the fixed keywords/word-aliases in spec §4.7.
//
// "break" and "exit" are deliberately absent: spec §4.7 and §9 resolve to
// not reserving them at scan time, so they surface as plain Identifier
// tokens. The Break Kind exists for a future parser but this table never
// produces it.
func LookupKeyword(text string) (Kind, bool) {
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= text
	})
	if idx < len(keywords) && keywords[idx].text == text {
		return keywords[idx].kind, true
	}
	return Error, false
}

// directives maps the full "#word" lexeme to its directive Kind (spec §4.3).
var directives = map[string]Kind{
	"#macro":     Macro,
	"#region":    RegionBegin,
	"#endregion": RegionEnd,
}

// LookupDirective returns the Kind for a "#"-prefixed directive, or
// (Error, false) if the text does not match one of the three fixed
// directives.
func LookupDirective(text string) (Kind, bool) {
	kind, ok := directives[text]
	return kind, ok
}
