package catalog

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("catalog.repository: tenant not found")

	// ErrProfessionalNotFound возвращается, когда специалист не найден в тенанте
	ErrProfessionalNotFound = errors.New("catalog.repository: professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в тенанте
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrProfessionalReferenced возвращается, когда на специалиста ссылаются записи (FK RESTRICT)
	ErrProfessionalReferenced = errors.New("catalog.repository: professional is referenced by appointments")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
