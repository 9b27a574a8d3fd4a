package domain

// StoreEntry - запись хранилища, ключ - ID объявления. Никогда не удаляется.
// DetailsFetched=false - страница объявления не загрузилась, поля по умолчанию,
// следующий обход загрузит ее снова.
type StoreEntry struct {
	ID             string   `json:"id"`
	Photos         []string `json:"photos"`
	TotalPrice     string   `json:"totalPrice"`
	FreeFrom       string   `json:"freeFrom"`
	CrawlerName    string   `json:"crawler,omitempty"`
	Sent           bool     `json:"sent"`
	DetailsFetched bool     `json:"detailsFetched"`
}

// Details возвращает закешированные поля страницы объявления
func (s StoreEntry) Details() ExposeDetails {
	return ExposeDetails{
		Photos:     s.Photos,
		TotalPrice: s.TotalPrice,
		FreeFrom:   s.FreeFrom,
	}
}

// NewStoreEntry собирает запись хранилища из результата разбора страницы объявления
func NewStoreEntry(id, crawlerName string, d ExposeDetails) StoreEntry {
	return StoreEntry{
		ID:             id,
		Photos:         d.Photos,
		TotalPrice:     d.TotalPrice,
		FreeFrom:       d.FreeFrom,
		CrawlerName:    crawlerName,
		DetailsFetched: true,
	}
}

// NewPendingStoreEntry - запись для объявления, страницу которого загрузить не удалось
func NewPendingStoreEntry(id, crawlerName string, d ExposeDetails) StoreEntry {
	entry := NewStoreEntry(id, crawlerName, d)
	entry.DetailsFetched = false
	return entry
}
