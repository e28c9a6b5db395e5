package workflow

import (
	"sort"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

// Chain is the ordered approval chain for one (department, location) pair.
// Levels are distinct positive integers; the chain may be sparse or empty.
type Chain []entity.ApprovalWorkflowEntry

// NewChain sorts the configured entries by approval level
func NewChain(entries []entity.ApprovalWorkflowEntry) Chain {
	sorted := append(Chain{}, entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ApprovalLevel < sorted[j].ApprovalLevel
	})
	return sorted
}

// AtLevel returns the entry configured at the given level, if any
func (c Chain) AtLevel(level int) (entity.ApprovalWorkflowEntry, bool) {
	for _, e := range c {
		if e.ApprovalLevel == level {
			return e, true
		}
	}
	return entity.ApprovalWorkflowEntry{}, false
}

// FirstApprover returns the level-1 entry. Its absence makes submission and
// resubmission a configuration error.
func (c Chain) FirstApprover() (entity.ApprovalWorkflowEntry, bool) {
	return c.AtLevel(1)
}

// NextApprover returns the entry one level above current. Absence signals
// final approval, not an error.
func (c Chain) NextApprover(currentLevel int) (entity.ApprovalWorkflowEntry, bool) {
	return c.AtLevel(currentLevel + 1)
}
