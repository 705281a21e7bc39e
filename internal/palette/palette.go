// Package palette owns the fixed set of display color tokens and the
// assignment of tokens to life periods.
package palette

import "strings"

// Token identifies one display color. It is opaque: the presentation layer
// decides what it looks like.
type Token string

// TextToken and BorderToken are the derived variants of a Token.
type (
	TextToken   string
	BorderToken string
)

const (
	Rose    Token = "rose"
	Amber   Token = "amber"
	Emerald Token = "emerald"
	Sky     Token = "sky"
	Violet  Token = "violet"
	Pink    Token = "pink"
	Lime    Token = "lime"
	Cyan    Token = "cyan"
	Orange  Token = "orange"
	Indigo  Token = "indigo"

	// Neutral marks unassigned cells and uncolored markers.
	Neutral Token = "gray"
)

// palette is the assignment order. Do not reorder: stored configurations
// rely on it indirectly through auto-assigned colors.
var palette = [...]Token{Rose, Amber, Emerald, Sky, Violet, Pink, Lime, Cyan, Orange, Indigo}

var textVariants = map[Token]TextToken{
	Rose:    "text-rose",
	Amber:   "text-amber",
	Emerald: "text-emerald",
	Sky:     "text-sky",
	Violet:  "text-violet",
	Pink:    "text-pink",
	Lime:    "text-lime",
	Cyan:    "text-cyan",
	Orange:  "text-orange",
	Indigo:  "text-indigo",
	Neutral: "text-gray",
}

var borderVariants = map[Token]BorderToken{
	Rose:    "border-rose",
	Amber:   "border-amber",
	Emerald: "border-emerald",
	Sky:     "border-sky",
	Violet:  "border-violet",
	Pink:    "border-pink",
	Lime:    "border-lime",
	Cyan:    "border-cyan",
	Orange:  "border-orange",
	Indigo:  "border-indigo",
	Neutral: "border-gray",
}

// Size is the number of auto-assignable tokens.
const Size = len(palette)

// Palette returns the ordered auto-assignable tokens.
func Palette() []Token {
	out := make([]Token, Size)
	copy(out, palette[:])
	return out
}

// At returns the palette token at i, wrapping around.
func At(i int) Token {
	i %= Size
	if i < 0 {
		i += Size
	}
	return palette[i]
}

// Lookup resolves a stored color string to a known token. Besides bare token
// names it accepts the class names written by older versions ("bg-rose-400").
func Lookup(s string) (Token, bool) {
	name := strings.TrimPrefix(s, "bg-")
	if i := strings.LastIndexByte(name, '-'); i > 0 {
		name = name[:i]
	}
	t := Token(name)
	if _, ok := textVariants[t]; ok {
		return t, true
	}
	return Neutral, false
}

// Text returns the text variant, falling back to the neutral one.
func (t Token) Text() TextToken {
	if k, ok := Lookup(string(t)); ok {
		return textVariants[k]
	}
	return textVariants[Neutral]
}

// Border returns the border variant, falling back to the neutral one.
func (t Token) Border() BorderToken {
	if k, ok := Lookup(string(t)); ok {
		return borderVariants[k]
	}
	return borderVariants[Neutral]
}
