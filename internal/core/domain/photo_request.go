package domain

// PhotoRequestState - состояние отправленного уведомления с точки зрения запроса фотографий
type PhotoRequestState string

const (
	StateSent            PhotoRequestState = "sent"
	StatePhotosRequested PhotoRequestState = "photos_requested"
	StatePhotosDelivered PhotoRequestState = "photos_delivered"
)

// photoRequestTransitions описывает разрешенные переходы.
// Неудачная доставка возвращает уведомление в Sent, повторный запрос после доставки разрешен.
var photoRequestTransitions = map[PhotoRequestState][]PhotoRequestState{
	StateSent:            {StatePhotosRequested},
	StatePhotosRequested: {StatePhotosDelivered, StateSent},
	StatePhotosDelivered: {StatePhotosRequested},
}

// IsTransitionAllowed проверяет, разрешен ли переход from -> to
func IsTransitionAllowed(from, to PhotoRequestState) bool {
	for _, allowed := range photoRequestTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
