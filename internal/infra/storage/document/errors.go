package document

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

var (
	// ErrVersionConflict возвращается, когда документ изменился после чтения.
	// Оборачивает txmanager.ErrConflict, поэтому транзакция будет повторена.
	ErrVersionConflict = fmt.Errorf("document.store: version conflict: %w", txmanager.ErrConflict)

	// ErrRead возвращается при ошибке чтения документа
	ErrRead = errors.New("document.store: failed to read document")

	// ErrWrite возвращается при ошибке записи документа
	ErrWrite = errors.New("document.store: failed to write document")

	// ErrInvalidName возвращается для пустого или небезопасного имени документа
	ErrInvalidName = errors.New("document.store: invalid document name")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("document.store: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("document.store: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("document.store: failed to scan row")

	// ErrUnsupportedDriver возвращается для неизвестного драйвера хранилища
	ErrUnsupportedDriver = errors.New("document.store: unsupported driver")
)
