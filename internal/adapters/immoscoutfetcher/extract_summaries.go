package immoscoutfetcher

import (
	"fmt"
	"strconv"
	"strings"

	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// ResultCount читает общее число объявлений в выдаче ("1.234" -> 1234)
func (a *Adapter) ResultCount(doc port.Document) (int, error) {
	nodes := doc.FindAll(selectorResultCount)
	if len(nodes) == 0 {
		return 0, fmt.Errorf("immoscout: result count not found")
	}
	raw := strings.ReplaceAll(cleanText(nodes[0].Text()), ".", "")
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("immoscout: invalid result count %q: %w", raw, err)
	}
	return count, nil
}

// ExtractSummaries разбирает карточки выдачи. Списки ссылок, атрибутов, адресов и
// галерей на странице идут в одном порядке и сопоставляются по индексу.
// Поля страницы объявления (фото, полная цена, дата) здесь не заполняются.
func (a *Adapter) ExtractSummaries(doc port.Document) []domain.Expose {
	titles := doc.FindAll(selectorTitleLink)
	attributes := doc.FindAll(selectorAttributes)
	addresses := doc.FindAll(selectorAddress)
	galleries := doc.FindAll(selectorGallery)

	exposes := make([]domain.Expose, 0, len(titles))
	for idx, titleEl := range titles {
		href, _ := titleEl.Attr("href")
		id := exposeIDFromHref(href)
		if id == "" {
			continue
		}

		var warnings []domain.ExtractionWarning
		expose := domain.Expose{
			ID:          id,
			URL:         canonicalURL(id, href),
			Title:       cleanTitle(titleEl.Text()),
			Address:     extractAddress(addresses, idx).Collect(&warnings),
			Image:       extractImage(galleries, idx).Collect(&warnings),
			CrawlerName: Name,
		}

		price, size, rooms := splitAttributes(attributeCells(attributes, idx))
		expose.Price = price.Collect(&warnings)
		expose.Size = size.Collect(&warnings)
		expose.Rooms = rooms.Collect(&warnings)
		expose.Warnings = warnings

		exposes = append(exposes, expose)
	}
	return exposes
}

// exposeIDFromHref: "/expose/123456.html" -> "123456"
func exposeIDFromHref(href string) string {
	href = strings.TrimRight(strings.TrimSpace(href), "/")
	if href == "" {
		return ""
	}
	segments := strings.Split(href, "/")
	last := segments[len(segments)-1]
	if i := strings.IndexAny(last, "?#"); i >= 0 {
		last = last[:i]
	}
	return strings.TrimSuffix(last, ".html")
}

func canonicalURL(id, href string) string {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil && len(id) > shortIDLength {
		return exposeURL + id
	}
	if strings.HasPrefix(href, "/") {
		return BaseURL + href
	}
	return href
}

func cleanTitle(raw string) string {
	return cleanText(strings.ReplaceAll(raw, "NEU", ""))
}

func attributeCells(containers []port.Element, idx int) []string {
	if idx >= len(containers) {
		return nil
	}
	cells := containers[idx].FindAll("dd")
	texts := make([]string, 0, len(cells))
	for _, cell := range cells {
		texts = append(texts, cleanText(cell.Text()))
	}
	return texts
}

// splitAttributes берет первое слово первых трех ячеек: цена, площадь, комнаты.
// Если ячеек меньше трех, все три поля пустые.
func splitAttributes(cells []string) (price, size, rooms domain.FieldResult[string]) {
	if len(cells) < minAttributeCells {
		reason := fmt.Sprintf("insufficient attribute cells: %d", len(cells))
		return domain.Defaulted("", "price", reason),
			domain.Defaulted("", "size", reason),
			domain.Defaulted("", "rooms", reason)
	}
	return domain.Found(firstToken(cells[0])),
		domain.Found(firstToken(cells[1]) + " qm"),
		domain.Found(firstToken(cells[2]))
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func extractAddress(addresses []port.Element, idx int) domain.FieldResult[string] {
	if idx >= len(addresses) {
		return domain.Defaulted(domain.NoAddressGiven, "address", "address element missing")
	}
	address := cleanText(addresses[idx].Text())
	if address == "" {
		return domain.Defaulted(domain.NoAddressGiven, "address", "address element empty")
	}
	return domain.Found(address)
}

func extractImage(galleries []port.Element, idx int) domain.FieldResult[string] {
	if idx >= len(galleries) {
		return domain.Defaulted("", "image", "gallery missing")
	}
	images := galleries[idx].FindAll(selectorGalleryImg)
	if len(images) == 0 {
		return domain.Defaulted("", "image", "gallery has no image")
	}
	if src, ok := images[0].Attr("src"); ok && src != "" {
		return domain.Found(src)
	}
	if src, ok := images[0].Attr("data-lazy-src"); ok && src != "" {
		return domain.Found(src)
	}
	return domain.Defaulted("", "image", "image has no source")
}
