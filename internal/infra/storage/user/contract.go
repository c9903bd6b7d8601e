package user

import "github.com/m04kA/SMC-ReservationService/internal/infra/storage/document"

// Store хранилище документов, в котором лежат учетные записи
type Store = document.Store
