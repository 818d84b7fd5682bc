package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в тенанте
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrOverlap возвращается, когда ограничение appointments_no_overlap отклонило запись
	ErrOverlap = errors.New("appointment.repository: time window overlaps an existing appointment")

	// ErrReferenceNotFound возвращается при нарушении внешнего ключа (специалист, клиент, услуга)
	ErrReferenceNotFound = errors.New("appointment.repository: referenced row not found")

	// ErrTransient возвращается при serialization failure или deadlock
	ErrTransient = errors.New("appointment.repository: transient failure, retry")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
