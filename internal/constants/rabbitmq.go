package constants

// Обменники и ключи маршрутизации
const (
	ExchangeExposes       = "flathunter.exposes"
	RoutingKeyNewExposes  = "exposes.new"
	ExchangeTypeExposes   = "topic"
	PublishTimeoutSeconds = 10
)
