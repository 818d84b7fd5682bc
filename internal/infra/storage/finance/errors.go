package finance

import "errors"

var (
	// ErrEntryExists возвращается, когда для записи уже есть финансовая запись
	ErrEntryExists = errors.New("finance.repository: entry for appointment already exists")

	// ErrEntryNotFound возвращается, когда финансовая запись не найдена
	ErrEntryNotFound = errors.New("finance.repository: entry not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("finance.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("finance.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("finance.repository: failed to scan row")
)
