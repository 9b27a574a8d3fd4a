package domain

import "time"

// Значения по умолчанию для полей объявления
const (
	NoAddressGiven = "No address given"
	NotSpecified   = "-"
)

// Expose представляет одно объявление, извлеченное со страницы выдачи
// и дополненное данными со страницы объявления.
type Expose struct {
	ID          string
	URL         string
	Title       string
	Address     string
	Price       string
	TotalPrice  string
	Size        string
	Rooms       string
	Image       string // пустая строка, если превью нет
	Photos      []string
	FreeFrom    string
	CrawlerName string
	Durations   string

	Warnings []ExtractionWarning
}

// HasPhotos сообщает, есть ли у объявления фотографии для отправки
func (e Expose) HasPhotos() bool {
	return len(e.Photos) > 0
}

// ApplyDetails переносит поля страницы объявления в запись
func (e Expose) ApplyDetails(d ExposeDetails) Expose {
	e.Photos = d.Photos
	e.TotalPrice = d.TotalPrice
	e.FreeFrom = d.FreeFrom
	return e
}

// FreeFromImmediately - квартира свободна сразу. Хранится как есть,
// в дату превращается при каждом обходе.
const FreeFromImmediately = "sofort"

// ResolveFreeFrom подставляет сегодняшнюю дату вместо FreeFromImmediately
func (d ExposeDetails) ResolveFreeFrom(today time.Time, layout string) ExposeDetails {
	if d.FreeFrom == FreeFromImmediately {
		d.FreeFrom = today.Format(layout)
	}
	return d
}

// ExposeDetails - поля, которые есть только на странице самого объявления
type ExposeDetails struct {
	Photos     []string
	TotalPrice string
	FreeFrom   string
}

// DefaultExposeDetails используется, когда страницу объявления получить не удалось
func DefaultExposeDetails() ExposeDetails {
	return ExposeDetails{
		Photos:     nil,
		TotalPrice: NotSpecified,
		FreeFrom:   NotSpecified,
	}
}
