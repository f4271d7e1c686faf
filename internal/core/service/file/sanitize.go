package file

import (
	"regexp"
	"strings"
	"unicode"
)

const fileNameSpecialChars = "?[]/\\=<>:;,'\"&$#*()|~`!{}%+’«»”“"

var dashRuns = regexp.MustCompile(`[\r\n\t -]+`)

// sanitizeFileName strips characters that are unsafe in a file name and
// collapses whitespace, so the result is usable as a flat storage key.
func sanitizeFileName(name string) string {
	name = strings.NewReplacer("%20", "-", "+", "-").Replace(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		if strings.ContainsRune(fileNameSpecialChars, r) {
			return -1
		}
		return r
	}, name)
	name = dashRuns.ReplaceAllString(name, "-")
	return strings.Trim(name, ".-_")
}

// sanitizeKey lowercases s and keeps only [a-z0-9_-]
func sanitizeKey(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return -1
		}
	}, s)
}
