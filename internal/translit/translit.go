// Package translit renders names written in Latin, Arabic, or Cyrillic
// script into a best-effort Hebrew form for comparison purposes. It never
// modifies Hebrew input and passes unrecognized scripts through unchanged,
// so callers can always feed it raw names.
package translit

import "strings"

// Script is a detected writing system.
type Script string

const (
	ScriptHebrew   Script = "he"
	ScriptArabic   Script = "ar"
	ScriptLatin    Script = "en"
	ScriptCyrillic Script = "ru"
	ScriptOther    Script = "other"
)

// DetectScript classifies a word by the Unicode block of its first
// decisive rune. Mixed-script words take the script of the first letter
// that falls in a known block.
func DetectScript(word string) Script {
	for _, r := range word {
		switch {
		case r >= 0x0590 && r <= 0x05FF:
			return ScriptHebrew
		case r >= 0x0600 && r <= 0x06FF:
			return ScriptArabic
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			return ScriptLatin
		case r >= 0x0400 && r <= 0x04FF:
			return ScriptCyrillic
		}
	}
	return ScriptOther
}

// IsHebrew reports whether any word of the text is written in Hebrew.
func IsHebrew(text string) bool {
	for _, word := range strings.Fields(text) {
		if DetectScript(word) == ScriptHebrew {
			return true
		}
	}
	return false
}

// Mapper transliterates names to Hebrew. A curated common-names table is
// consulted first for all scripts; character mapping is the fallback. The
// zero value is not usable, construct with NewMapper.
type Mapper struct {
	names CommonNames
}

// NewMapper builds a Mapper over the given common-names table. A nil table
// means character mapping only.
func NewMapper(names CommonNames) *Mapper {
	return &Mapper{names: names}
}

// Transliterate renders name into Hebrew. Hebrew input and unknown scripts
// come back unchanged; the curated table wins over character mapping so
// conventional renderings ("Moshe" -> משה) beat letter-by-letter ones.
func (m *Mapper) Transliterate(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	script := DetectScript(name)
	if script == ScriptHebrew || script == ScriptOther {
		return name
	}

	if hebrew, ok := m.names.Lookup(name); ok {
		return hebrew
	}

	switch script {
	case ScriptArabic:
		return mapRunes(name, arabicToHebrew)
	case ScriptCyrillic:
		return mapRunes(name, cyrillicToHebrew)
	case ScriptLatin:
		return latinToHebrew(name)
	}
	return name
}

// mapRunes transliterates via a per-rune table, dropping unmapped runes,
// then applies Hebrew final-letter rules.
func mapRunes(name string, table map[rune]string) string {
	var sb strings.Builder
	for _, r := range name {
		sb.WriteString(table[r])
	}
	return applyFinalLetters(sb.String())
}

// applyFinalLetters swaps the last letter for its final (sofit) form where
// Hebrew orthography requires one.
func applyFinalLetters(hebrew string) string {
	runes := []rune(hebrew)
	if len(runes) == 0 {
		return hebrew
	}
	if final, ok := finalLetters[runes[len(runes)-1]]; ok {
		runes[len(runes)-1] = final
	}
	return string(runes)
}
