package align

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// Phonetic сравнивает фразы по звучанию: каждое слово кодируется
// Double Metaphone, затем коды сравниваются тем же алгоритмом, что и текст.
// Омофоны ("WRITE" и "RIGHT") дают полное совпадение.
func Phonetic(reference, hypothesis string) float64 {
	return Ratio(phoneticKey(reference), phoneticKey(hypothesis))
}

func phoneticKey(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	codes := make([]string, 0, len(words))
	for _, w := range words {
		code, _ := matchr.DoubleMetaphone(w)
		if code == "" {
			// Слова без согласных и нелатиница остаются как есть
			code = strings.ToUpper(w)
		}
		codes = append(codes, code)
	}

	return strings.Join(codes, " ")
}
