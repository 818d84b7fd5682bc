package domain

import "errors"

// Категории ошибок, общие для всех слоёв. Слои оборачивают их через %w,
// обработчики HTTP сопоставляют их со статусами через errors.Is.
var (
	// ErrValidation некорректные входные данные (400)
	ErrValidation = errors.New("validation failed")

	// ErrOverlap окно специалиста уже занято другой записью (409)
	ErrOverlap = errors.New("time window overlaps an existing appointment")

	// ErrImmutableState операция недопустима в текущем статусе записи (409)
	ErrImmutableState = errors.New("operation not allowed in current appointment state")

	// ErrNotFound объект не найден в пределах тенанта (404)
	ErrNotFound = errors.New("not found")

	// ErrConflict конфликт с существующими данными (409)
	ErrConflict = errors.New("conflict with existing data")

	// ErrInternal внутренняя или временная ошибка (500)
	ErrInternal = errors.New("internal error")
)
