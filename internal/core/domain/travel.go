package domain

import "time"

// TravelMode - способ передвижения для расчета времени в пути
type TravelMode string

const (
	TravelModeTransit   TravelMode = "transit"
	TravelModeDriving   TravelMode = "driving"
	TravelModeBicycling TravelMode = "bicycling"
	TravelModeWalking   TravelMode = "walking"
)

// Destination - точка, до которой считается время в пути от адреса объявления
type Destination struct {
	Name    string
	Address string
	Modes   []TravelMode
}

// TravelDuration - результат расчета для одной пары (адрес, назначение, способ)
type TravelDuration struct {
	Destination string
	Mode        TravelMode
	Duration    time.Duration
	Distance    string
}
