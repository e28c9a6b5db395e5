package workflow

import (
	"testing"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

func chainFixture() Chain {
	return NewChain([]entity.ApprovalWorkflowEntry{
		{ID: 3, Department: "IT", Location: "HQ", ApprovalLevel: 3, ApproverID: 30},
		{ID: 1, Department: "IT", Location: "HQ", ApprovalLevel: 1, ApproverID: 10},
		{ID: 2, Department: "IT", Location: "HQ", ApprovalLevel: 2, ApproverID: 20},
	})
}

func TestNewChain_SortsByLevel(t *testing.T) {
	chain := chainFixture()

	for i, wantLevel := range []int{1, 2, 3} {
		if chain[i].ApprovalLevel != wantLevel {
			t.Errorf("chain[%d].ApprovalLevel = %d, want %d", i, chain[i].ApprovalLevel, wantLevel)
		}
	}
}

func TestChain_FirstApprover(t *testing.T) {
	first, ok := chainFixture().FirstApprover()
	if !ok {
		t.Fatal("FirstApprover() not found")
	}
	if first.ApproverID != 10 {
		t.Errorf("FirstApprover().ApproverID = %d, want 10", first.ApproverID)
	}
}

func TestChain_FirstApproverMissingLevelOne(t *testing.T) {
	// A chain configured only from level 2 upward cannot accept submissions
	chain := NewChain([]entity.ApprovalWorkflowEntry{
		{ApprovalLevel: 2, ApproverID: 20},
	})

	if _, ok := chain.FirstApprover(); ok {
		t.Error("FirstApprover() should report absence without a level-1 entry")
	}
}

func TestChain_NextApprover(t *testing.T) {
	chain := chainFixture()

	next, ok := chain.NextApprover(1)
	if !ok {
		t.Fatal("NextApprover(1) not found")
	}
	if next.ApproverID != 20 {
		t.Errorf("NextApprover(1).ApproverID = %d, want 20", next.ApproverID)
	}

	if _, ok := chain.NextApprover(3); ok {
		t.Error("NextApprover(3) should report absence past the last level")
	}
}

func TestChain_Empty(t *testing.T) {
	chain := NewChain(nil)

	if _, ok := chain.FirstApprover(); ok {
		t.Error("empty chain should have no first approver")
	}
	if _, ok := chain.NextApprover(1); ok {
		t.Error("empty chain should have no next approver")
	}
}
