package script

import "strings"

// Status represents the recording state of a script item.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusCompleted  Status = "completed"
	StatusRemoved    Status = "removed"
)

var allStatuses = []Status{
	StatusNotStarted,
	StatusCompleted,
	StatusRemoved,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Label returns the user-facing status text.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusCompleted:
		return "Completed"
	case StatusRemoved:
		return "Removed"
	default:
		return string(s)
	}
}

// Item is one prompt in the canonical script list.
//
// Num is the item's stable identity. Items are never physically deleted;
// removal is a status transition and is reversible by re-accepting.
type Item struct {
	Num  int
	Text string
	// Status is derived by reconciliation and mutated by accept/remove.
	Status Status
	// RecordSeconds is the duration of the retained recording, 0 unless
	// Completed.
	RecordSeconds float64
	// LatestDate is the 8-digit date of the retained submission, empty
	// unless Completed.
	LatestDate string
}

// ClearSubmission resets the item's derived recording state.
func (i *Item) ClearSubmission(status Status) {
	i.Status = status
	i.RecordSeconds = 0
	i.LatestDate = ""
}
