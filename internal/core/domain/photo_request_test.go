package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransitionAllowed(t *testing.T) {
	tests := []struct {
		name string
		from PhotoRequestState
		to   PhotoRequestState
		want bool
	}{
		{"request after send", StateSent, StatePhotosRequested, true},
		{"deliver requested", StatePhotosRequested, StatePhotosDelivered, true},
		{"failed delivery goes back", StatePhotosRequested, StateSent, true},
		{"request again after delivery", StatePhotosDelivered, StatePhotosRequested, true},
		{"skip request", StateSent, StatePhotosDelivered, false},
		{"delivered back to sent", StatePhotosDelivered, StateSent, false},
		{"unknown state", PhotoRequestState("archived"), StateSent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransitionAllowed(tt.from, tt.to))
		})
	}
}

func TestFieldResultCollect(t *testing.T) {
	var warnings []ExtractionWarning

	price := Found("850").Collect(&warnings)
	size := Defaulted("", "size", "insufficient attribute cells").Collect(&warnings)

	assert.Equal(t, "850", price)
	assert.Empty(t, size)
	assert.Equal(t, []ExtractionWarning{{Field: "size", Reason: "insufficient attribute cells"}}, warnings)
}
