package scheduling

// Annotate returns a copy of slots with Busy set for every slot whose start matches the
// time of a reserving booking on date.
//
// Matching is on the exact (date, time) pair. A 55 minute booking at h:05 does not mark the
// h:35 slot busy even though the two intervals overlap.
func Annotate(slots []Slot, bookings []Booking, date Date) []Slot {
	annotated := make([]Slot, len(slots))

	for i, slot := range slots {
		slot.Busy = false

		for _, booking := range bookings {
			if booking.Date == date && booking.Time == slot.Start && booking.Status.Reserves() {
				slot.Busy = true

				break
			}
		}

		annotated[i] = slot
	}

	return annotated
}

// FreeSlots filters slots down to the ones not marked busy.
func FreeSlots(slots []Slot) []Slot {
	free := make([]Slot, 0, len(slots))

	for _, slot := range slots {
		if !slot.Busy {
			free = append(free, slot)
		}
	}

	return free
}
