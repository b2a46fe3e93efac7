// Package content holds static, per-locale content tables.
package content

import (
	"strings"

	"github.com/aliskhannn/spicy-vs-sweet/internal/normalize"
)

// fallbackLocale is checked in addition to the room locale; players mix in English slang.
const fallbackLocale = "en"

// maxPhraseWords is the word count of the longest blocked phrase.
const maxPhraseWords = 3

// blockedTerms lists, per locale, terms that must not be echoed to the group.
var blockedTerms = map[string][]string{
	"en": {"fuck", "shit", "bitch", "asshole", "cunt", "nigger", "faggot", "retard"},
	"de": {"scheiße", "arschloch", "fotze", "hurensohn", "wichser", "schlampe"},
	"es": {"mierda", "puta", "gilipollas", "cabrón", "pendejo", "maricón", "coño"},
	"pt": {"merda", "porra", "caralho", "puta", "viado", "buceta", "filho da puta"},
	"fr": {"merde", "putain", "connard", "salope", "enculé", "pute", "nique ta mère"},
}

// blockedIndex holds the normalized terms of blockedTerms.
var blockedIndex = func() map[string]map[string]struct{} {
	idx := make(map[string]map[string]struct{}, len(blockedTerms))
	for locale, terms := range blockedTerms {
		set := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			set[normalize.Answer(t)] = struct{}{}
		}
		idx[locale] = set
	}
	return idx
}()

// IsBlocked reports whether text contains a blocked term of locale, or of English,
// as a whole word or phrase. Case and accents are ignored.
func IsBlocked(locale, text string) bool {
	words := strings.FieldsFunc(normalize.Answer(text), isSeparator)
	if len(words) == 0 {
		return false
	}

	if containsTerm(blockedIndex[locale], words) {
		return true
	}
	return locale != fallbackLocale && containsTerm(blockedIndex[fallbackLocale], words)
}

func containsTerm(terms map[string]struct{}, words []string) bool {
	if len(terms) == 0 {
		return false
	}

	for i := range words {
		for n := 1; n <= maxPhraseWords && i+n <= len(words); n++ {
			if _, ok := terms[strings.Join(words[i:i+n], " ")]; ok {
				return true
			}
		}
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', ',', '.', '!', '?', ';', ':', '"', '\'', '(', ')', '-', '_', '*', '/':
		return true
	}
	return false
}
