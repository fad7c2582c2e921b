package translit

import "strings"

// finalLetters maps Hebrew letters to their word-final (sofit) forms.
var finalLetters = map[rune]rune{
	'כ': 'ך',
	'מ': 'ם',
	'נ': 'ן',
	'פ': 'ף',
	'צ': 'ץ',
}

// arabicToHebrew maps Arabic letters to their closest Hebrew consonants.
// Emphatic/plain pairs collapse onto one Hebrew letter.
var arabicToHebrew = map[rune]string{
	'ا': "א", 'ب': "ב", 'ت': "ת", 'ث': "ת", 'ج': "ג", 'ح': "ח", 'خ': "ח",
	'د': "ד", 'ذ': "ד", 'ر': "ר", 'ز': "ז", 'س': "ס", 'ش': "ש", 'ص': "צ",
	'ض': "צ", 'ط': "ט", 'ظ': "ט", 'ع': "ע", 'غ': "ע", 'ف': "פ", 'ق': "ק",
	'ك': "כ", 'ل': "ל", 'م': "מ", 'ن': "נ", 'ه': "ה", 'و': "ו", 'ي': "י",
	'ء': "א", 'أ': "א", 'إ': "א", 'ؤ': "ו", 'ئ': "א", 'ى': "א", 'ة': "ה",
	'آ': "א", ' ': " ",
}

// cyrillicToHebrew maps Russian Cyrillic letters to Hebrew. Soft and hard
// signs vanish; iotated vowels become yod pairs.
var cyrillicToHebrew = map[rune]string{
	'А': "א", 'а': "א", 'Б': "ב", 'б': "ב", 'В': "ו", 'в': "ו", 'Г': "ג", 'г': "ג",
	'Д': "ד", 'д': "ד", 'Е': "א", 'е': "א", 'Ё': "יו", 'ё': "יו", 'Ж': "ז", 'ж': "ז",
	'З': "ז", 'з': "ז", 'И': "י", 'и': "י", 'Й': "י", 'й': "י", 'К': "ק", 'к': "ק",
	'Л': "ל", 'л': "ל", 'М': "מ", 'м': "מ", 'Н': "נ", 'н': "נ", 'О': "ו", 'о': "ו",
	'П': "פ", 'п': "פ", 'Р': "ר", 'р': "ר", 'С': "ס", 'с': "ס", 'Т': "ת", 'т': "ת",
	'У': "ו", 'у': "ו", 'Ф': "פ", 'ф': "פ", 'Х': "ח", 'х': "ח", 'Ц': "צ", 'ц': "צ",
	'Ч': "צ", 'ч': "צ", 'Ш': "ש", 'ш': "ש", 'Щ': "שצ", 'щ': "שצ", 'Ъ': "", 'ъ': "",
	'Ы': "י", 'ы': "י", 'Ь': "", 'ь': "", 'Э': "א", 'э': "א", 'Ю': "יו", 'ю': "יו",
	'Я': "יא", 'я': "יא", ' ': " ",
}

// latinSingles maps single Latin letters. Interior vowels a/e are silent in
// Hebrew consonantal spelling and map to nothing.
var latinSingles = map[rune]string{
	'a': "", 'b': "ב", 'c': "ק", 'd': "ד", 'e': "", 'f': "פ", 'g': "ג", 'h': "ה",
	'i': "י", 'j': "ג׳", 'k': "ק", 'l': "ל", 'm': "מ", 'n': "נ", 'o': "ו", 'p': "פ",
	'q': "ק", 'r': "ר", 's': "ס", 't': "ת", 'u': "ו", 'v': "ו", 'w': "ו", 'x': "קס",
	'y': "י", 'z': "ז", ' ': " ",
}

// latinDigraphs maps multi-letter sequences tried before single letters,
// longest first.
var latinDigraphs = []struct {
	seq    string
	hebrew string
}{
	{"ch", "ח"}, {"sh", "ש"}, {"th", "ת"}, {"kh", "ח"}, {"ph", "פ"},
	{"oo", "ו"}, {"ee", "י"}, {"ei", "יי"}, {"ie", "י"}, {"ou", "ו"},
	{"ai", "יי"}, {"ay", "יי"}, {"ey", "יי"}, {"ae", "יי"},
	{"ck", "ק"},
	{"tt", "ת"}, {"dd", "ד"}, {"nn", "נ"}, {"mm", "מ"}, {"ss", "ס"},
	{"ll", "ל"}, {"rr", "ר"}, {"ff", "פ"}, {"pp", "פ"}, {"bb", "ב"},
	{"gg", "ג"}, {"cc", "ק"},
}

// latinToHebrew transliterates a Latin-script name letter by letter:
// digraphs first, a leading vowel becomes aleph, a trailing -a becomes he,
// and final-letter rules close it out.
func latinToHebrew(name string) string {
	lower := strings.ToLower(name)
	var sb strings.Builder

	runes := []rune(lower)
	for i := 0; i < len(runes); {
		matched := false
		for _, d := range latinDigraphs {
			seq := []rune(d.seq)
			if i+len(seq) <= len(runes) && string(runes[i:i+len(seq)]) == d.seq {
				sb.WriteString(d.hebrew)
				i += len(seq)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		r := runes[i]
		if i == 0 && (r == 'a' || r == 'e' || r == 'o' || r == 'u') {
			sb.WriteString("א")
		} else {
			sb.WriteString(latinSingles[r])
		}
		i++
	}

	hebrew := sb.String()
	if strings.HasSuffix(lower, "a") {
		if strings.HasSuffix(hebrew, "א") {
			hebrew = strings.TrimSuffix(hebrew, "א") + "ה"
		} else {
			hebrew += "ה"
		}
	}
	return applyFinalLetters(hebrew)
}
