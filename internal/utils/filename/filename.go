// Package filename normalizes user-supplied file names before they become
// archive entry names.
package filename

import (
	"strings"
	"unicode"
)

const maxLength = 255

// Characters that are unsafe in archive entry names on common filesystems.
const forbidden = `<>:"/\|?*`

// Sanitize replaces each forbidden character with an underscore, collapses
// whitespace runs to a single underscore and caps the result at 255
// characters. The transform is idempotent: sanitizing an already-sanitized
// name returns it unchanged.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	inSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte('_')
			inSpace = false
		}
		if strings.ContainsRune(forbidden, r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	if inSpace {
		b.WriteByte('_')
	}

	out := b.String()
	if runes := []rune(out); len(runes) > maxLength {
		out = string(runes[:maxLength])
	}
	return out
}
