package immoscoutfetcher

import (
	"strings"
	"testing"

	"flathunter-service/internal/adapters/htmlfetcher"
	"flathunter-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultPage = `<html><body>
<span data-is24-qa="resultlist-resultCount">1.234</span>
<article>
  <div class="result-list-entry__gallery-container">
    <div class="gallery-container"><img src="https://pictures.example/a.jpg"></div>
  </div>
  <a class="result-list-entry__brand-title-container" href="/expose/123456789.html">NEU
     Helle 2-Zimmer-Wohnung</a>
  <div class="result-list-entry__address">Mitte,
     Berlin</div>
  <dl data-is24-qa="attributes"><dd>850 €</dd><dd>54,5 m²</dd><dd>2 Zi.</dd></dl>
</article>
<article>
  <div class="result-list-entry__gallery-container">
    <div class="gallery-container"><img data-lazy-src="https://pictures.example/b.jpg"></div>
  </div>
  <a class="result-list-entry__brand-title-container" href="/expose/4242.html">Altbau</a>
  <div class="result-list-entry__address">Wedding, Berlin</div>
  <dl data-is24-qa="attributes"><dd>700 €</dd><dd>40 m²</dd></dl>
</article>
</body></html>`

const detailPage = `<html><body>
<div class="sp-image" data-src="https://pictures.example/1.jpg/ORIG/resize/800x600"></div>
<div class="sp-image" data-src="https://pictures.example/2.jpg/ORIG/resize/800x600"></div>
<div class="sp-image"></div>
<dd class="is24qa-gesamtmiete"> 1.020 € </dd>
<dd class="is24qa-bezugsfrei-ab">ab sofort</dd>
<div class="address-block">Torstraße 1,
  10119 Berlin</div>
</body></html>`

func parse(t *testing.T, html string) *htmlfetcher.Document {
	t.Helper()
	doc, err := htmlfetcher.ParseDocument(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestPagedURL(t *testing.T) {
	a := NewAdapter()

	tests := []struct {
		in   string
		want string
	}{
		{"https://www.immobilienscout24.de/Suche/de/berlin?sorting=2", "https://www.immobilienscout24.de/Suche/de/berlin?sorting=2&pagenumber={page}"},
		{"https://www.immobilienscout24.de/Suche/de/berlin?sorting=2&pagenumber=12", "https://www.immobilienscout24.de/Suche/de/berlin?sorting=2&pagenumber={page}"},
		{"https://www.immobilienscout24.de/Suche/de/berlin", "https://www.immobilienscout24.de/Suche/de/berlin?pagenumber={page}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.PagedURL(tt.in))
	}

	assert.Equal(t, "https://x/?a=1&pagenumber=3", a.PageURL("https://x/?a=1&pagenumber={page}", 3))
}

func TestCanCrawl(t *testing.T) {
	a := NewAdapter()
	assert.True(t, a.CanCrawl("https://www.immobilienscout24.de/Suche/de/berlin"))
	assert.False(t, a.CanCrawl("https://www.wg-gesucht.de/wohnungen-in-Berlin"))
}

func TestResultCount(t *testing.T) {
	a := NewAdapter()

	count, err := a.ResultCount(parse(t, resultPage))
	require.NoError(t, err)
	assert.Equal(t, 1234, count)

	_, err = a.ResultCount(parse(t, "<html><body></body></html>"))
	assert.Error(t, err)
}

func TestExtractSummaries(t *testing.T) {
	exposes := NewAdapter().ExtractSummaries(parse(t, resultPage))
	require.Len(t, exposes, 2)

	first := exposes[0]
	assert.Equal(t, "123456789", first.ID)
	assert.Equal(t, "https://www.immobilienscout24.de/expose/123456789", first.URL)
	assert.Equal(t, "Helle 2-Zimmer-Wohnung", first.Title)
	assert.Equal(t, "Mitte, Berlin", first.Address)
	assert.Equal(t, "850", first.Price)
	assert.Equal(t, "54,5 qm", first.Size)
	assert.Equal(t, "2", first.Rooms)
	assert.Equal(t, "https://pictures.example/a.jpg", first.Image)
	assert.Equal(t, Name, first.CrawlerName)
	assert.Empty(t, first.Warnings)

	second := exposes[1]
	assert.Equal(t, "4242", second.ID)
	assert.Equal(t, BaseURL+"/expose/4242.html", second.URL)
	assert.Equal(t, "https://pictures.example/b.jpg", second.Image)
	assert.Empty(t, second.Price)
	assert.Empty(t, second.Size)
	assert.Empty(t, second.Rooms)
	require.Len(t, second.Warnings, 3)
	assert.Equal(t, "price", second.Warnings[0].Field)
}

func TestExtractDetails(t *testing.T) {
	details := NewAdapter().ExtractDetails(parse(t, detailPage))

	assert.Equal(t, []string{"https://pictures.example/1.jpg", "https://pictures.example/2.jpg"}, details.Photos)
	assert.Equal(t, "1.020 €", details.TotalPrice)
	assert.Equal(t, domain.FreeFromImmediately, details.FreeFrom)
}

func TestExtractDetailsDefaults(t *testing.T) {
	details := NewAdapter().ExtractDetails(parse(t, `<html><body><dd class="is24qa-bezugsfrei-ab">01.06.2024</dd></body></html>`))

	assert.Empty(t, details.Photos)
	assert.Equal(t, domain.NotSpecified, details.TotalPrice)
	assert.Equal(t, "01.06.2024", details.FreeFrom)

	details = NewAdapter().ExtractDetails(parse(t, `<html><body></body></html>`))
	assert.Equal(t, domain.NotSpecified, details.FreeFrom)
}

func TestExtractAddress(t *testing.T) {
	a := NewAdapter()

	address := a.ExtractAddress(parse(t, detailPage))
	assert.Equal(t, "Torstraße 1, 10119 Berlin", address.Value)
	assert.Nil(t, address.Warning)

	missing := a.ExtractAddress(parse(t, "<html></html>"))
	assert.Equal(t, domain.NoAddressGiven, missing.Value)
	assert.NotNil(t, missing.Warning)
}
