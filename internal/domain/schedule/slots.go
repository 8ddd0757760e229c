package schedule

// Interval is a busy [Start,End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// TimeSlot is a bookable candidate start time. Slots are derived per
// query and never cached; committed bookings change the set.
type TimeSlot struct {
	Time      TimeOfDay
	Available bool
}

// GenerateSlots returns the bookable start times for a service of
// durationMin minutes, given the committed busy intervals for the day.
//
// Candidates advance in slotDuration steps regardless of the requested
// duration; the grid granularity is independent of service length. A
// candidate [t, t+duration) is dropped when it overlaps a break, spills
// past the working window, or the number of overlapping busy intervals
// has reached the day's booking capacity.
func (d *DayAvailability) GenerateSlots(durationMin int, busy []Interval) []TimeSlot {
	if d.isDayOff || durationMin <= 0 {
		return nil
	}

	windowStart := d.workingHours.start.Minutes()
	windowEnd := d.workingHours.end.Minutes()

	var slots []TimeSlot
	for t := windowStart; t+durationMin <= windowEnd; t += d.slotDuration {
		if d.overlapsBreak(t, t+durationMin) {
			continue
		}
		if d.countBusyOverlaps(t, t+durationMin, busy) >= d.maxBookings {
			continue
		}
		start, err := FromMinutes(t)
		if err != nil {
			break
		}
		slots = append(slots, TimeSlot{Time: start, Available: true})
	}
	return slots
}

func (d *DayAvailability) overlapsBreak(start, end int) bool {
	for _, b := range d.breaks {
		if Overlaps(start, end, b.start.Minutes(), b.end.Minutes()) {
			return true
		}
	}
	return false
}

func (d *DayAvailability) countBusyOverlaps(start, end int, busy []Interval) int {
	n := 0
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			n++
		}
	}
	return n
}
