package job

import "strings"

// Application stages. The set is fixed and seeded once; a job whose status
// reference does not resolve is rendered as UnknownLabel instead of rejected.
const (
	StatusSentRequest = 1
	StatusInProgress  = 2
	StatusInterview   = 3
	StatusRejected    = 4
	StatusSuccess     = 5
)

const UnknownLabel = "Unknown"

// DefaultStatusID is assigned to new captures and to imported rows whose
// status label does not resolve.
const DefaultStatusID = StatusSentRequest

type StatusEntry struct {
	ID    int
	Label string
}

func StatusSeed() []StatusEntry {
	return []StatusEntry{
		{ID: StatusSentRequest, Label: "Sent Request"},
		{ID: StatusInProgress, Label: "In Progress"},
		{ID: StatusInterview, Label: "Interview"},
		{ID: StatusRejected, Label: "Rejected"},
		{ID: StatusSuccess, Label: "Success"},
	}
}

// StatusMap holds the id<->label mapping in both directions so status
// resolution is a lookup, not a scan per row.
type StatusMap struct {
	byID    map[int]string
	byLabel map[string]int
}

func NewStatusMap(entries []StatusEntry) StatusMap {
	m := StatusMap{
		byID:    make(map[int]string, len(entries)),
		byLabel: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		m.byID[e.ID] = e.Label
		m.byLabel[strings.ToLower(e.Label)] = e.ID
	}
	return m
}

// Label resolves a status id, falling back to UnknownLabel.
func (m StatusMap) Label(id int) string {
	if l, ok := m.byID[id]; ok {
		return l
	}
	return UnknownLabel
}

// Resolve matches a label case-insensitively. Unresolvable or empty labels
// fall back to DefaultStatusID.
func (m StatusMap) Resolve(label string) int {
	if id, ok := m.byLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return id
	}
	return DefaultStatusID
}

func (m StatusMap) Len() int {
	return len(m.byID)
}
