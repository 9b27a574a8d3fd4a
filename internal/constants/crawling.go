package constants

import "time"

// Обход поисковой выдачи
const (
	// ResultLimit - максимум объявлений, которые набираются с одного поискового URL
	ResultLimit = 50
	// MaxConsecutivePageFailures - после стольких неудачных страниц подряд обход URL прекращается
	MaxConsecutivePageFailures = 2

	PageToken = "{page}"

	DefaultRequestTimeout = 30 * time.Second
)

// Форматы дат
const (
	FreeFromDateLayout = "02.01.2006"
)
