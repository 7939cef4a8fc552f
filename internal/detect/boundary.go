package detect

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// wordPattern is a regexp whose matches must sit on word boundaries. RE2's \b only
// understands ASCII, which breaks on Devanagari, so boundaries are checked here with
// letters, combining marks, digits and underscore counted as word runes.
type wordPattern struct {
	re *regexp.Regexp
}

func mustWordPattern(expr string) wordPattern {
	return wordPattern{re: regexp.MustCompile(expr)}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

func onBoundary(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// find returns the first boundary-respecting match, or the first such match of
// capture group 1 when the expression has one.
func (p wordPattern) find(s string) (string, bool) {
	for _, loc := range p.re.FindAllStringSubmatchIndex(s, -1) {
		if !onBoundary(s, loc[0], loc[1]) {
			continue
		}
		if len(loc) >= 4 && loc[2] >= 0 {
			return s[loc[2]:loc[3]], true
		}
		return s[loc[0]:loc[1]], true
	}
	return "", false
}

func (p wordPattern) match(s string) bool {
	_, ok := p.find(s)
	return ok
}

// digitBounded matches like wordPattern but only requires the neighbours to be
// non-digits. It is used on text that has already been reduced to digits, '+' and
// whitespace.
type digitBounded struct {
	re *regexp.Regexp
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func (p digitBounded) find(s string) (string, bool) {
	for _, loc := range p.re.FindAllStringSubmatchIndex(s, -1) {
		if loc[0] > 0 && isASCIIDigit(s[loc[0]-1]) {
			continue
		}
		if loc[1] < len(s) && isASCIIDigit(s[loc[1]]) {
			continue
		}
		if len(loc) >= 4 && loc[2] >= 0 {
			return s[loc[2]:loc[3]], true
		}
		return s[loc[0]:loc[1]], true
	}
	return "", false
}
