package appointment

import (
	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
)

// FindConflicts returns the active appointments whose [start,end)
// interval overlaps the proposed one, in minutes since midnight.
// excludeID skips the appointment being rescheduled; pass uuid.Nil for
// a fresh booking. The caller supplies the full appointment set for
// the staff/date partition.
func FindConflicts(existing []*Appointment, proposedStart, proposedEnd int, excludeID uuid.UUID) []*Appointment {
	var conflicts []*Appointment
	for _, appt := range existing {
		if appt.ID() == excludeID {
			continue
		}
		if !appt.Status().IsActive() {
			continue
		}
		iv := appt.Interval()
		if schedule.Overlaps(proposedStart, proposedEnd, iv.Start, iv.End) {
			conflicts = append(conflicts, appt)
		}
	}
	return conflicts
}

// BusyIntervals projects the active appointments onto their occupied
// intervals, excluding excludeID. Slot generation consumes this so the
// availability view and the commit path share one overlap semantics.
func BusyIntervals(existing []*Appointment, excludeID uuid.UUID) []schedule.Interval {
	var busy []schedule.Interval
	for _, appt := range existing {
		if appt.ID() == excludeID {
			continue
		}
		if !appt.Status().IsActive() {
			continue
		}
		busy = append(busy, appt.Interval())
	}
	return busy
}
