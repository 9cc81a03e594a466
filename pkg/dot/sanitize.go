package dot

import (
	"strings"
	"unicode"
)

// reserved lists the runes rewritten inside a quoted DOT ID: the string
// delimiter, the escape character and the statement terminator. Serialize
// always quotes IDs, so other punctuation and spaces are kept as they are.
const reserved = "\"\\;"

// Replacement is the rune substituted for every reserved or control rune by
// [Sanitize].
const Replacement = '_'

// Sanitize maps an identifier to a form that is safe to embed as a DOT node
// ID. Every rune in the reserved set and every control rune is replaced by
// [Replacement]; all other runes are kept. An identifier without such runes
// is returned unchanged.
//
// Sanitize is not a canonicalization: "a;b" and "a_b" map to the same ID.
// [Serialize] suffixes such collisions so each node keeps its own ID.
func Sanitize(id string) string {
	if !needsSanitize(id) {
		return id
	}
	return strings.Map(func(r rune) rune {
		if isReserved(r) {
			return Replacement
		}
		return r
	}, id)
}

func needsSanitize(id string) bool {
	return strings.IndexFunc(id, isReserved) >= 0
}

func isReserved(r rune) bool {
	return strings.ContainsRune(reserved, r) || unicode.IsControl(r)
}
