package translit

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// CommonNames is a curated lookup of conventional Hebrew renderings for
// common foreign name spellings, keyed by the lowercased foreign variant.
// The character mapper can only guess letter by letter; this table carries
// the renderings people actually use.
type CommonNames map[string]string

// Lookup returns the Hebrew rendering for a foreign variant, if curated.
func (n CommonNames) Lookup(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	hebrew, ok := n[strings.ToLower(strings.TrimSpace(name))]
	return hebrew, ok
}

// nameVariants is the on-disk shape: one Hebrew name with its spellings
// per language.
type nameVariants struct {
	English         []string `json:"english"`
	Arabic          []string `json:"arabic"`
	Russian         []string `json:"russian"`
	RussianCyrillic []string `json:"russian_cyrillic"`
}

// LoadCommonNames reads a structured names file (Hebrew name -> variant
// lists) and flattens it into a variant -> Hebrew lookup.
func LoadCommonNames(path string) (CommonNames, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names file: %w", err)
	}

	var structured map[string]nameVariants
	if err := json.Unmarshal(data, &structured); err != nil {
		return nil, fmt.Errorf("parse names file %s: %w", path, err)
	}

	return flatten(structured), nil
}

func flatten(structured map[string]nameVariants) CommonNames {
	flat := make(CommonNames)
	for hebrew, variants := range structured {
		for _, list := range [][]string{variants.English, variants.Arabic, variants.Russian, variants.RussianCyrillic} {
			for _, v := range list {
				v = strings.ToLower(strings.TrimSpace(v))
				if v != "" {
					flat[v] = hebrew
				}
			}
		}
	}
	return flat
}

// DefaultCommonNames returns the built-in seed table, used when no names
// file is configured.
func DefaultCommonNames() CommonNames {
	return flatten(map[string]nameVariants{
		"אברהם": {English: []string{"avraham", "abraham", "avi"}, Arabic: []string{"ابراهيم"}, RussianCyrillic: []string{"Авраам"}},
		"אחמד":  {English: []string{"ahmad", "ahmed"}, Arabic: []string{"أحمد", "احمد"}},
		"דוד":   {English: []string{"david", "dave"}, Arabic: []string{"داود"}, RussianCyrillic: []string{"Давид"}},
		"חבי":   {English: []string{"havi", "havy"}},
		"חביבה": {English: []string{"haviva", "habiba"}, Arabic: []string{"حبيبة"}},
		"יוסף":  {English: []string{"yosef", "yossi", "joseph"}, Arabic: []string{"يوسف"}},
		"יצחק":  {English: []string{"yitzhak", "itzhak", "isaac"}},
		"מוחמד": {English: []string{"muhammad", "mohammed", "mohammad"}, Arabic: []string{"محمد"}},
		"משה":   {English: []string{"moshe"}, RussianCyrillic: []string{"Моше"}},
		"פראס":  {English: []string{"prass", "pras", "firas"}, Arabic: []string{"فراس"}},
		"רחל":   {English: []string{"rachel", "rahel"}},
		"שרה":   {English: []string{"sarah", "sara"}, RussianCyrillic: []string{"Сара"}},
	})
}
