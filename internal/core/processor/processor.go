package processor

import (
	"context"
	"iter"

	"flathunter-service/internal/core/domain"
)

// Processor преобразует последовательность объявлений
type Processor interface {
	ProcessExposes(ctx context.Context, exposes iter.Seq2[domain.Expose, error]) iter.Seq2[domain.Expose, error]
}

// ExposeStage обрабатывает одно объявление: возвращает (возможно измененную)
// запись и признак, нужно ли передавать ее дальше
type ExposeStage interface {
	ProcessExpose(ctx context.Context, expose domain.Expose) (domain.Expose, bool, error)
}

// StageFunc позволяет использовать функцию как ExposeStage
type StageFunc func(ctx context.Context, expose domain.Expose) (domain.Expose, bool, error)

func (f StageFunc) ProcessExpose(ctx context.Context, expose domain.Expose) (domain.Expose, bool, error) {
	return f(ctx, expose)
}

// PerExpose делает из ExposeStage ленивый Processor. Ошибка из источника или
// стадии передается дальше и завершает последовательность
func PerExpose(stage ExposeStage) Processor {
	return perExpose{stage: stage}
}

type perExpose struct {
	stage ExposeStage
}

func (p perExpose) ProcessExposes(ctx context.Context, exposes iter.Seq2[domain.Expose, error]) iter.Seq2[domain.Expose, error] {
	return func(yield func(domain.Expose, error) bool) {
		for expose, err := range exposes {
			if err != nil {
				yield(domain.Expose{}, err)
				return
			}
			out, keep, err := p.stage.ProcessExpose(ctx, expose)
			if err != nil {
				yield(domain.Expose{}, err)
				return
			}
			if keep && !yield(out, nil) {
				return
			}
		}
	}
}
