package domain

import "github.com/m04kA/PrismCRM/pkg/types"

// AvailableSlot represents a tour time slot and whether it can still be booked
type AvailableSlot struct {
	Time      types.TimeString
	Available bool
}
