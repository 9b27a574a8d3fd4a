package rabbitmq_common

import (
	"fmt"
	"strings"
)

// Config - общие настройки подключения к RabbitMQ
type Config struct {
	URL string
}

// Validate проверяет общие настройки
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("rabbitmq url is required")
	}
	if !strings.HasPrefix(c.URL, "amqp://") && !strings.HasPrefix(c.URL, "amqps://") {
		return fmt.Errorf("rabbitmq url must start with amqp:// or amqps://")
	}
	return nil
}
