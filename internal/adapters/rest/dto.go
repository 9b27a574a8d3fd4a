package rest

import "flathunter-service/internal/core/domain"

// StartHuntRequestDTO - тело POST /api/v1/hunts. Пустое тело допустимо
type StartHuntRequestDTO struct {
	MaxPages *int `json:"max_pages"`
}

type ExposeDTO struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Address    string `json:"address"`
	Price      string `json:"price"`
	TotalPrice string `json:"total_price"`
	Size       string `json:"size"`
	Rooms      string `json:"rooms"`
	FreeFrom   string `json:"free_from"`
	Durations  string `json:"durations,omitempty"`
}

type HuntResultDTO struct {
	NewOffers int         `json:"new_offers"`
	Exposes   []ExposeDTO `json:"exposes"`
}

type StoreEntryDTO struct {
	ID         string   `json:"id"`
	Crawler    string   `json:"crawler,omitempty"`
	Photos     []string `json:"photos"`
	TotalPrice string   `json:"total_price"`
	FreeFrom   string   `json:"free_from"`
	Sent       bool     `json:"sent"`
}

func toExposeDTO(e domain.Expose) ExposeDTO {
	return ExposeDTO{
		ID:         e.ID,
		URL:        e.URL,
		Title:      e.Title,
		Address:    e.Address,
		Price:      e.Price,
		TotalPrice: e.TotalPrice,
		Size:       e.Size,
		Rooms:      e.Rooms,
		FreeFrom:   e.FreeFrom,
		Durations:  e.Durations,
	}
}

func toStoreEntryDTO(e domain.StoreEntry) StoreEntryDTO {
	photos := e.Photos
	if photos == nil {
		photos = []string{}
	}
	return StoreEntryDTO{
		ID:         e.ID,
		Crawler:    e.CrawlerName,
		Photos:     photos,
		TotalPrice: e.TotalPrice,
		FreeFrom:   e.FreeFrom,
		Sent:       e.Sent,
	}
}
