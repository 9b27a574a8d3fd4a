package domain

import "fmt"

// ExtractionWarning фиксирует поле, значение которого не удалось извлечь со страницы
// и которое было заменено значением по умолчанию.
type ExtractionWarning struct {
	Field  string
	Reason string
}

func (w ExtractionWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Reason)
}

// FieldResult - результат извлечения одного поля: значение и, возможно, предупреждение.
type FieldResult[T any] struct {
	Value   T
	Warning *ExtractionWarning
}

// Found - поле найдено на странице
func Found[T any](value T) FieldResult[T] {
	return FieldResult[T]{Value: value}
}

// Defaulted - поле не найдено, используется значение по умолчанию
func Defaulted[T any](value T, field, reason string) FieldResult[T] {
	return FieldResult[T]{
		Value:   value,
		Warning: &ExtractionWarning{Field: field, Reason: reason},
	}
}

// Collect возвращает значение и дописывает предупреждение (если оно есть) в warnings
func (r FieldResult[T]) Collect(warnings *[]ExtractionWarning) T {
	if r.Warning != nil && warnings != nil {
		*warnings = append(*warnings, *r.Warning)
	}
	return r.Value
}
