package booking

// ===============================
// Status
// ===============================

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusWaiting         Status = "waiting"
	StatusOngoing         Status = "ongoing"
	StatusCompleted       Status = "completed"
	StatusNoShow          Status = "no-show"
)

// Statuses that occupy a barber's time.
var (
	BusyAppointmentStatuses = []Status{StatusApproved, StatusPendingApproval, StatusOngoing}
	BusyWalkInStatuses      = []Status{StatusWaiting, StatusApproved, StatusOngoing}
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPendingApproval, StatusApproved, StatusRejected, StatusWaiting,
		StatusOngoing, StatusCompleted, StatusNoShow:
		return st, true
	}
	return "", false
}

// ===============================
// Transitions
// ===============================

var appointmentTransitions = map[Status][]Status{
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusOngoing, StatusRejected, StatusNoShow},
	StatusOngoing:         {StatusCompleted},
}

var walkInTransitions = map[Status][]Status{
	StatusWaiting:  {StatusOngoing, StatusRejected, StatusNoShow},
	StatusApproved: {StatusOngoing, StatusRejected, StatusNoShow},
	StatusOngoing:  {StatusCompleted},
}

// CanTransition reports whether a source record of the given type may move
// from one status to another.
func CanTransition(kind SourceType, from, to Status) bool {
	table := appointmentTransitions
	if kind == SourceWalkIn {
		table = walkInTransitions
	}
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ManualTarget reports whether a status may be set directly through the
// approve/reject/no-show paths. Ongoing and completed are reached only by
// starting and completing service.
func ManualTarget(s Status) bool {
	return s == StatusApproved || s == StatusRejected || s == StatusNoShow
}

// EntryStatusFor derives the queue entry status mirrored from a source
// record status.
func EntryStatusFor(source Status) Status {
	switch source {
	case StatusOngoing, StatusCompleted, StatusRejected, StatusNoShow:
		return source
	default:
		return StatusWaiting
	}
}

func StatusStrings(ss []Status) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}
