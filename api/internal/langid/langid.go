// Package langid gives a coarse script/language hint for a transcript.
// Informational only: nothing downstream branches on it yet, it is logged
// next to the transcript so reviewers can spot mismatched analyses.
package langid

import "unicode"

// Hint carries the predominant script and, when the mapping is unambiguous,
// a BCP-47 language code. Lang stays empty for shared scripts (Latin,
// Cyrillic, Han) where guessing would be wrong more often than useful.
type Hint struct {
	Script string
	Lang   string
}

// Texts shorter than this (in letters) never get a Lang.
const minLetters = 10

func Detect(s string) Hint {
	var latin, cyrillic, greek, han, kana, hangul, arabic, hebrew, thai, devanagari int
	total := 0

	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		switch {
		case unicode.In(r, unicode.Hiragana), unicode.In(r, unicode.Katakana):
			kana++
		case unicode.In(r, unicode.Hangul):
			hangul++
		case unicode.In(r, unicode.Han):
			han++
		case unicode.In(r, unicode.Arabic):
			arabic++
		case unicode.In(r, unicode.Hebrew):
			hebrew++
		case unicode.In(r, unicode.Thai):
			thai++
		case unicode.In(r, unicode.Greek):
			greek++
		case unicode.In(r, unicode.Cyrillic):
			cyrillic++
		case unicode.In(r, unicode.Devanagari):
			devanagari++
		case unicode.In(r, unicode.Latin):
			latin++
		}
	}

	type sc struct {
		name string
		cnt  int
	}
	// Tie-break prefers specific scripts over Latin.
	cands := []sc{
		{"Kana", kana},
		{"Hangul", hangul},
		{"Han", han},
		{"Arabic", arabic},
		{"Hebrew", hebrew},
		{"Thai", thai},
		{"Greek", greek},
		{"Cyrillic", cyrillic},
		{"Devanagari", devanagari},
		{"Latin", latin},
	}
	var best sc
	for _, c := range cands {
		if c.cnt > best.cnt {
			best = c
		}
	}

	h := Hint{Script: best.name}
	if best.cnt == 0 {
		h.Script = ""
		return h
	}
	if total < minLetters {
		return h
	}
	switch {
	case kana > 0:
		h.Lang = "ja"
	case hangul > 0:
		h.Lang = "ko"
	case arabic > 0:
		h.Lang = "ar"
	case hebrew > 0:
		h.Lang = "he"
	case thai > 0:
		h.Lang = "th"
	case greek > 0:
		h.Lang = "el"
	}
	return h
}
