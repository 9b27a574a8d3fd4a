package immoscoutfetcher

import (
	"strings"

	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// ExtractDetails разбирает страницу объявления: фото в исходном порядке,
// полную цену и дату, с которой квартира свободна.
func (a *Adapter) ExtractDetails(doc port.Document) domain.ExposeDetails {
	details := domain.DefaultExposeDetails()

	for _, node := range doc.FindAll(selectorDetailPhoto) {
		src, ok := node.Attr("data-src")
		if !ok || src == "" {
			continue
		}
		// ".../ORIG/resize/..." -> ссылка на оригинал без параметров ресайза
		details.Photos = append(details.Photos, strings.Split(src, originalPhotoSeparator)[0])
	}

	if nodes := doc.FindAll(selectorTotalPrice); len(nodes) > 0 {
		if total := cleanText(nodes[0].Text()); total != "" {
			details.TotalPrice = total
		}
	}

	if nodes := doc.FindAll(selectorFreeFrom); len(nodes) > 0 {
		details.FreeFrom = a.freeFrom(cleanText(nodes[0].Text()))
	}

	return details
}

func (a *Adapter) freeFrom(text string) string {
	switch {
	case text == "":
		return domain.NotSpecified
	case strings.Contains(strings.ToLower(text), immediateAvailability):
		// дату подставляет crawler.Crawler при каждом обходе
		return domain.FreeFromImmediately
	default:
		return text
	}
}

// ExtractAddress достает адрес со страницы объявления
func (a *Adapter) ExtractAddress(doc port.Document) domain.FieldResult[string] {
	nodes := doc.FindAll(selectorDetailAddress)
	if len(nodes) == 0 {
		return domain.Defaulted(domain.NoAddressGiven, "address", "address block missing")
	}
	address := cleanText(nodes[0].Text())
	if address == "" {
		return domain.Defaulted(domain.NoAddressGiven, "address", "address block empty")
	}
	return domain.Found(address)
}
