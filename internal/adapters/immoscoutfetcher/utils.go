package immoscoutfetcher

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanText приводит текст к NFC и схлопывает пробелы и переносы строк
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
