package rabbitmq

import (
	"time"

	"flathunter-service/internal/core/domain"
)

// NewExposeEventDTO - тело сообщения о новом объявлении
type NewExposeEventDTO struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Price       string    `json:"price"`
	TotalPrice  string    `json:"total_price"`
	Size        string    `json:"size"`
	Rooms       string    `json:"rooms"`
	FreeFrom    string    `json:"free_from"`
	Image       string    `json:"image,omitempty"`
	Photos      []string  `json:"photos,omitempty"`
	Durations   string    `json:"durations,omitempty"`
	CrawlerName string    `json:"crawler"`
	FoundAt     time.Time `json:"found_at"`
}

func toNewExposeEventDTO(e domain.Expose, foundAt time.Time) NewExposeEventDTO {
	return NewExposeEventDTO{
		ID:          e.ID,
		URL:         e.URL,
		Title:       e.Title,
		Address:     e.Address,
		Price:       e.Price,
		TotalPrice:  e.TotalPrice,
		Size:        e.Size,
		Rooms:       e.Rooms,
		FreeFrom:    e.FreeFrom,
		Image:       e.Image,
		Photos:      e.Photos,
		Durations:   e.Durations,
		CrawlerName: e.CrawlerName,
		FoundAt:     foundAt.UTC(),
	}
}
