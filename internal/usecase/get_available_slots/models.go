package get_available_slots

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса свободных слотов на дату
type Request struct {
	Date types.Date        // Дата
	Time *types.TimeString // Если указано, возвращаются слоты только этого времени
}

// Response модель ответа со свободными временами и слотами
type Response struct {
	Date  types.Date
	Times []TimeSlots // В каноническом порядке
}

// TimeSlots свободные слоты одного времени
type TimeSlots struct {
	Time  types.TimeString
	Slots []domain.SlotIndex
}
