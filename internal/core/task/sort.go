package task

import (
	"cmp"
	"fmt"
	"slices"
)

// SortKey selects the ordering used by Sort.
type SortKey int

const (
	// SortDue orders by due date ascending with undated tasks last.
	SortDue SortKey = iota
	// SortCreated orders by creation time, newest first.
	SortCreated
	// SortUpdated orders by last update, newest first.
	SortUpdated
	// SortStatus orders by status rank, then as SortDue.
	SortStatus
	// SortID orders by ID.
	SortID
)

var sortKeyNames = map[SortKey]string{
	SortDue:     "due",
	SortCreated: "created",
	SortUpdated: "updated",
	SortStatus:  "status",
	SortID:      "id",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// SortKeyNames returns the accepted sort key names.
func SortKeyNames() []string {
	return []string{"due", "created", "updated", "status", "id"}
}

// ParseSortKey maps a name to a SortKey. The empty string yields SortDue.
func ParseSortKey(s string) (SortKey, bool) {
	if s == "" {
		return SortDue, true
	}
	for k, name := range sortKeyNames {
		if name == s {
			return k, true
		}
	}
	return SortDue, false
}

// Sort orders tasks in place by key. Every ordering is total: ties are broken
// by ascending ID.
func Sort(tasks []Task, key SortKey) {
	slices.SortFunc(tasks, comparator(key))
}

func comparator(key SortKey) func(a, b Task) int {
	switch key {
	case SortDue:
		return compareDue
	case SortCreated:
		return func(a, b Task) int {
			return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
		}
	case SortUpdated:
		return func(a, b Task) int {
			return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), cmp.Compare(a.ID, b.ID))
		}
	case SortStatus:
		return func(a, b Task) int {
			return cmp.Or(cmp.Compare(a.Status.Rank(), b.Status.Rank()), compareDue(a, b))
		}
	case SortID:
		return func(a, b Task) int {
			return cmp.Compare(a.ID, b.ID)
		}
	default:
		panic(fmt.Sprintf("task: unhandled sort key %s", key))
	}
}

func compareDue(a, b Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return cmp.Compare(a.ID, b.ID)
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return cmp.Or(a.DueDate.Compare(*b.DueDate), cmp.Compare(a.ID, b.ID))
}
