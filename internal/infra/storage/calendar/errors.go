package calendar

import "errors"

var (
	// ErrEntryNotFound возвращается, когда на день недели нет расписания
	ErrEntryNotFound = errors.New("calendar.repository: work calendar entry not found")

	// ErrDuplicateWeekday возвращается при нарушении UNIQUE(professional_id, weekday)
	ErrDuplicateWeekday = errors.New("calendar.repository: duplicate weekday for professional")

	// ErrInvalidEntry возвращается, когда CHECK ограничение таблицы отклонило запись
	ErrInvalidEntry = errors.New("calendar.repository: entry violates table constraints")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)
