package immoscoutfetcher

import (
	"regexp"
	"strconv"
	"strings"

	"flathunter-service/internal/constants"
)

const (
	Name      = "immobilienscout"
	BaseURL   = "https://www.immobilienscout24.de"
	exposeURL = BaseURL + "/expose/"

	// ID длиннее этого числа цифр получает канонический URL /expose/<id>
	shortIDLength = 5
	// меньше трех ячеек - непонятно, где цена, где площадь
	minAttributeCells = 3
)

// Селекторы разметки ImmobilienScout24
const (
	selectorResultCount = `[data-is24-qa="resultlist-resultCount"]`
	selectorTitleLink   = `a.result-list-entry__brand-title-container`
	selectorAttributes  = `[data-is24-qa="attributes"]`
	selectorAddress     = `.result-list-entry__address`
	selectorGallery     = `.result-list-entry__gallery-container`
	selectorGalleryImg  = `div.gallery-container img`

	selectorDetailPhoto    = `.sp-image`
	selectorTotalPrice     = `.is24qa-gesamtmiete`
	selectorFreeFrom       = `.is24qa-bezugsfrei-ab`
	selectorDetailAddress  = `.address-block`
	immediateAvailability  = "sofort"
	originalPhotoSeparator = "/ORIG"
)

var (
	urlPattern        = regexp.MustCompile(`https://www\.immobilienscout24\.de`)
	pageNumberPattern = regexp.MustCompile(`([?&])pagenumber=\d+`)
)

// Adapter знает разметку ImmobilienScout24. Загрузка страниц и обход выдачи
// живут в crawler.Crawler.
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) CanCrawl(url string) bool {
	return urlPattern.MatchString(url)
}

// PagedURL заменяет номер страницы на шаблон либо дописывает его
func (a *Adapter) PagedURL(searchURL string) string {
	if pageNumberPattern.MatchString(searchURL) {
		return pageNumberPattern.ReplaceAllString(searchURL, "${1}pagenumber="+constants.PageToken)
	}
	separator := "&"
	if !strings.Contains(searchURL, "?") {
		separator = "?"
	}
	return searchURL + separator + "pagenumber=" + constants.PageToken
}

func (a *Adapter) PageURL(template string, page int) string {
	return strings.ReplaceAll(template, constants.PageToken, strconv.Itoa(page))
}
