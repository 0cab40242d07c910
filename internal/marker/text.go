package marker

import "strings"

// IsJapanese reports whether r falls in the hiragana, katakana or CJK unified
// ideograph ranges used for Japanese titles and keywords.
func IsJapanese(r rune) bool {
	return (r >= 0x3040 && r <= 0x309f) ||
		(r >= 0x30a0 && r <= 0x30ff) ||
		(r >= 0x4e00 && r <= 0x9faf)
}

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309f
}

// IsASCIILetter reports whether r is a Latin letter a-z or A-Z.
func IsASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsWord reports whether r is an ASCII word character (letter, digit or underscore).
func IsWord(r rune) bool {
	return IsASCIILetter(r) || (r >= '0' && r <= '9') || r == '_'
}

// ContainsJapanese reports whether s has at least one Japanese script rune.
func ContainsJapanese(s string) bool {
	return strings.IndexFunc(s, IsJapanese) >= 0
}

// ContainsASCIILetter reports whether s has at least one Latin letter.
func ContainsASCIILetter(s string) bool {
	return strings.IndexFunc(s, IsASCIILetter) >= 0
}
