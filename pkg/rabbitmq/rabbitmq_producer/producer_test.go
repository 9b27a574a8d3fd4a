package rabbitmq_producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisherConfigValidate(t *testing.T) {
	assert.NoError(t, PublisherConfig{ExchangeName: "flathunter.exposes", ExchangeType: "topic", DeclareExchangeIfMissing: true}.Validate())
	assert.NoError(t, PublisherConfig{}.Validate())
	assert.Error(t, PublisherConfig{ExchangeType: "topic", DeclareExchangeIfMissing: true}.Validate())
	assert.Error(t, PublisherConfig{ExchangeName: "flathunter.exposes", DeclareExchangeIfMissing: true}.Validate())
}
