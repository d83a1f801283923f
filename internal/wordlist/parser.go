// Package wordlist parses the flat dictionary files the lexicon is loaded
// from. The line grammar is:
//
//	word (transliteration) = pos. meaning1, meaning2 / meaning3
//
// The transliteration and part-of-speech prefix are optional; blank lines
// and lines starting with '#' are skipped.
package wordlist

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

type Entry struct {
	Sanskrit        string
	Transliteration string
	PrimaryMeaning  string
	EnglishMeanings []string
	PartOfSpeech    string
	HindiMeaning    string
	Tags            string
	Raw             string
}

var posMap = map[string]string{
	"adj":    "adjective",
	"adv":    "adverb",
	"m":      "masculine noun",
	"f":      "feminine noun",
	"n":      "neuter noun",
	"masc":   "masculine noun",
	"fem":    "feminine noun",
	"neu":    "neuter noun",
	"pron":   "pronoun",
	"prep":   "preposition",
	"pref":   "prefix",
	"suf":    "suffix",
	"suffix": "suffix",
	"prefix": "prefix",
	"num":    "numeral",
	"conj":   "conjunction",
	"int":    "interjection",
	"interj": "interjection",
	"part":   "particle",
	"ppp":    "past passive participle",
	"pp":     "past participle",
	"ger":    "gerund",
	"vt":     "transitive verb",
	"vi":     "intransitive verb",
	"v":      "verb",
}

var (
	translitRe  = regexp.MustCompile(`^(.*?)\s*\((.*?)\)\s*$`)
	posPrefixRe = regexp.MustCompile(`^([a-zA-Z./]+)\s+(.+)`)
	orRe        = regexp.MustCompile(`(?i)\s+or\s+`)
	splitRe     = regexp.MustCompile(`[,;/]+`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// ParseLine returns nil for lines that carry no entry (blank, comment, or
// malformed).
func ParseLine(line string) *Entry {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	eq := strings.Index(trimmed, "=")
	if eq < 0 {
		return nil
	}
	left := strings.TrimSpace(trimmed[:eq])
	right := strings.TrimSpace(trimmed[eq+1:])
	if left == "" || right == "" {
		return nil
	}

	sanskrit, transliteration := splitWordAndTransliteration(left)
	meanings, primary, pos := extractMeanings(right)

	return &Entry{
		Sanskrit:        sanskrit,
		Transliteration: transliteration,
		PrimaryMeaning:  primary,
		EnglishMeanings: meanings,
		PartOfSpeech:    pos,
		Raw:             trimmed,
	}
}

// ParseAll reads entries from r, skipping non-entries. limit = 0 means no
// limit.
func ParseAll(r io.Reader, limit int) ([]*Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []*Entry
	for scanner.Scan() {
		entry := ParseLine(scanner.Text())
		if entry == nil {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func splitWordAndTransliteration(left string) (string, string) {
	if m := translitRe.FindStringSubmatch(left); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(left), ""
}

func extractMeanings(rawRight string) ([]string, string, string) {
	cleaned := strings.TrimSpace(spaceRe.ReplaceAllString(rawRight, " "))
	primary := cleaned

	pos := ""
	if mapped, rest, ok := detectPartOfSpeech(primary); ok {
		pos = mapped
		primary = rest
	}

	var meanings []string
	for _, piece := range splitRe.Split(orRe.ReplaceAllString(primary, ","), -1) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			meanings = append(meanings, piece)
		}
	}
	if len(meanings) == 0 {
		meanings = []string{primary}
	}

	return meanings, meanings[0], pos
}

func detectPartOfSpeech(rawMeaning string) (string, string, bool) {
	m := posPrefixRe.FindStringSubmatch(strings.TrimSpace(rawMeaning))
	if m == nil {
		return "", "", false
	}
	prefix := strings.ToLower(strings.TrimSuffix(m[1], "."))
	mapped, ok := posMap[prefix]
	if !ok {
		return "", "", false
	}
	return mapped, strings.TrimSpace(m[2]), true
}
