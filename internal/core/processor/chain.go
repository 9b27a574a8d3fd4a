package processor

import (
	"context"
	"iter"

	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// Chain - цепочка процессоров, применяемых по порядку
type Chain struct {
	processors []Processor
	callbacks  port.CallbackHandlerPort
}

// Process сворачивает цепочку слева направо. Ничего не вычисляется,
// пока потребитель не начнет читать результат
func (c *Chain) Process(ctx context.Context, exposes iter.Seq2[domain.Expose, error]) iter.Seq2[domain.Expose, error] {
	for _, p := range c.processors {
		exposes = p.ProcessExposes(ctx, exposes)
	}
	return exposes
}

// CallbackHandler возвращает обработчик нажатий отправителя цепочки, если он есть
func (c *Chain) CallbackHandler() port.CallbackHandlerPort {
	return c.callbacks
}

func (c *Chain) Len() int {
	return len(c.processors)
}
