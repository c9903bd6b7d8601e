package reservation

import "github.com/m04kA/SMC-ReservationService/internal/infra/storage/document"

// Store хранилище документов, в котором лежит набор бронирований
type Store = document.Store
