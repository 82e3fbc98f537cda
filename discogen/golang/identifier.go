package golang

import (
	"strings"
	"unicode"
)

// Go reserved words. Generated argument names that collide get an
// underscore suffix.
var reservedWords = map[string]bool{
	"break":       true,
	"case":        true,
	"chan":        true,
	"const":       true,
	"continue":    true,
	"default":     true,
	"defer":       true,
	"else":        true,
	"fallthrough": true,
	"for":         true,
	"func":        true,
	"go":          true,
	"goto":        true,
	"if":          true,
	"import":      true,
	"interface":   true,
	"map":         true,
	"package":     true,
	"range":       true,
	"return":      true,
	"select":      true,
	"struct":      true,
	"switch":      true,
	"type":        true,
	"var":         true,
}

// GoName converts a discovery identifier ("maxResults", "animals.photos",
// "max-results") into an exported Go identifier ("MaxResults",
// "AnimalsPhotos").
func GoName(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			if upperNext {
				b.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				b.WriteRune(r)
			}
		case unicode.IsDigit(r):
			if b.Len() == 0 {
				b.WriteByte('X')
			}
			b.WriteRune(r)
			upperNext = true
		default:
			// Separators: '.', '-', '_', anything else non-identifier.
			upperNext = true
		}
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// argName converts a wire name into an unexported Go argument name,
// escaping reserved words with an underscore suffix.
func argName(name string) string {
	goName := GoName(name)
	arg := strings.ToLower(goName[:1]) + goName[1:]
	if reservedWords[arg] {
		return arg + "_"
	}
	return arg
}

// lowerFirst lowers the first rune of an identifier.
func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
