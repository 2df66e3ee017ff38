package render

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

// JoinList joins items using list grammar: "A", "A and B", "A, B and C".
func JoinList(items []string, lt policy.ListType) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + " " + lt.Conjunction() + " " + items[last]
}

// ApplyCase transforms v according to c. CAPITALISED title-cases every word
// delimited by whitespace or a hyphen and lowercases the rest of each word.
func ApplyCase(v string, c policy.Case) string {
	switch c {
	case policy.CaseLower:
		return cases.Lower(language.English).String(v)
	case policy.CaseCapitalised:
		return capitalise(v)
	default:
		return v
	}
}

// capitalise uppercases the first rune of each word and lowercases the rest.
// Words are delimited by whitespace or a hyphen; a leading digit is left as
// is, so "12th" stays "12th".
func capitalise(v string) string {
	upper := cases.Upper(language.English)
	lower := cases.Lower(language.English)

	var b strings.Builder
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := v[start:end]
		_, size := utf8.DecodeRuneInString(word)
		b.WriteString(upper.String(word[:size]))
		b.WriteString(lower.String(word[size:]))
		start = -1
	}
	for i, r := range v {
		if unicode.IsSpace(r) || r == '-' {
			flush(i)
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(v))
	return b.String()
}

// CompactAddress drops empty comma-delimited address lines and rejoins the
// remainder with ", ".
func CompactAddress(v string) string {
	parts := strings.Split(v, ",")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// trailingArticle matches a final standalone "a" or "an" and any trailing space.
var trailingArticle = regexp.MustCompile(`(^|[\s(])([Aa][Nn]?)(\s*)$`)

// FixArticle rewrites a trailing "a"/"an" in preceding so it agrees with the
// text that follows it. It returns preceding unchanged when it does not end
// in an article.
func FixArticle(preceding, following string) string {
	m := trailingArticle.FindStringSubmatchIndex(preceding)
	if m == nil {
		return preceding
	}
	article := preceding[m[4]:m[5]]
	want := "a"
	if startsWithVowel(following) {
		want = "an"
	}
	if unicode.IsUpper(rune(article[0])) {
		want = strings.ToUpper(want[:1]) + want[1:]
	}
	return preceding[:m[4]] + want + preceding[m[5]:]
}

func startsWithVowel(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	r, _ := utf8.DecodeRuneInString(s)
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
