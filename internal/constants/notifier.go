package constants

// Протокол запроса фотографий
const (
	ShowPicsButtonText = "show pics"
	NoPicsAnswer       = "Sorry, I dont have pics for this one"

	// MediaGroupSize - максимальный размер альбома в мессенджере
	MediaGroupSize = 10
	// MinPhotosForGallery - альбом отправляется только если фотографий больше двух
	MinPhotosForGallery = 3
)
