package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, schedule *domain.TourSchedule) error {
	req.Building = strings.TrimSpace(req.Building)

	if req.Building == "" {
		return fmt.Errorf("%w: building is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !schedule.HasBuilding(req.Building) {
		return fmt.Errorf("%w: %q", ErrUnknownBuilding, req.Building)
	}
	return nil
}

// buildSlots размечает сетку слотов: занятые и все слоты закрытого дня недоступны
func buildSlots(grid []types.TimeString, taken []types.TimeString, closed bool) []domain.AvailableSlot {
	busy := make(map[int]struct{}, len(taken))
	for _, t := range taken {
		busy[t.Minutes()] = struct{}{}
	}

	slots := make([]domain.AvailableSlot, 0, len(grid))
	for _, slot := range grid {
		_, isTaken := busy[slot.Minutes()]
		slots = append(slots, domain.AvailableSlot{
			Time:      slot,
			Available: !closed && !isTaken,
		})
	}
	return slots
}
