package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// arabicLetters maps base Arabic letters to Latin approximations for
// email-local-part generation. Harakat are stripped by normalization
// before this map applies.
var arabicLetters = map[rune]string{
	'ا': "a", 'أ': "a", 'إ': "i", 'آ': "aa",
	'ب': "b", 'ت': "t", 'ث': "th", 'ج': "j",
	'ح': "h", 'خ': "kh", 'د': "d", 'ذ': "dh",
	'ر': "r", 'ز': "z", 'س': "s", 'ش': "sh",
	'ص': "s", 'ض': "d", 'ط': "t", 'ظ': "z",
	'ع': "a", 'غ': "gh", 'ف': "f", 'ق': "q",
	'ك': "k", 'ل': "l", 'م': "m", 'ن': "n",
	'ه': "h", 'و': "w", 'ي': "y",
	'ة': "a", 'ى': "a", 'ء': "", 'ؤ': "w", 'ئ': "y",
}

// stripMarks removes combining marks (Arabic harakat included) after
// compatibility decomposition.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// transliterate converts a name to a lowercase ASCII slug usable as part
// of an email local part. Latin letters and digits pass through, Arabic
// letters map to approximations, everything else is dropped. A name with
// no usable characters falls back to "employee".
func transliterate(name string) string {
	normalized, _, err := transform.String(stripMarks, name)
	if err != nil {
		normalized = name
	}

	var b strings.Builder
	for _, r := range normalized {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		default:
			if mapped, ok := arabicLetters[r]; ok {
				b.WriteString(mapped)
			}
		}
	}

	if b.Len() == 0 {
		return "employee"
	}
	return b.String()
}
