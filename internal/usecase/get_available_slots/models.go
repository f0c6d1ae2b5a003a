package get_available_slots

import (
	"time"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/types"
)

// Request модель запроса слотов здания на дату
type Request struct {
	Building string
	Date     time.Time // Дата тура (без времени)
}

// Response модель ответа со слотами
type Response struct {
	Building string
	Date     time.Time
	Closed   bool                   // Выходной или дата вне окна бронирования
	Taken    []types.TimeString     // Занятое время, по возрастанию
	Slots    []domain.AvailableSlot // Вся сетка слотов с флагом доступности
}
