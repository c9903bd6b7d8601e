package reservation

import "errors"

var (
	// ErrMalformedDocument возвращается, если сохраненный документ не удалось разобрать или он нарушает инварианты.
	// Отличается от отсутствия документа: пустым набором такой документ не считается.
	ErrMalformedDocument = errors.New("reservation.repository: malformed reservations document")

	// ErrLoad возвращается при ошибке чтения документа из хранилища
	ErrLoad = errors.New("reservation.repository: failed to load reservations")

	// ErrSave возвращается при ошибке записи документа в хранилище
	ErrSave = errors.New("reservation.repository: failed to save reservations")

	// ErrEncode возвращается, если набор бронирований не удалось сериализовать
	ErrEncode = errors.New("reservation.repository: failed to encode reservations")
)
