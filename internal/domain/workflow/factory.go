package workflow

// NewRequestMachine builds the purchase-request lifecycle machine starting
// from the given status.
//
// Approve has two targets out of pending: stay pending when another approval
// level remains (hasNextLevel), otherwise land in approved. Approved and
// rejected are terminal; a returned request only accepts resubmission.
func NewRequestMachine(current State, hasNextLevel GuardFunc) StateMachine {
	b := NewBuilder()

	b.Configure(StatePending).
		PermitIf(TriggerApprove, StatePending, hasNextLevel).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerReject, StateRejected).
		Permit(TriggerReturn, StateReturned)

	b.Configure(StateReturned).
		Permit(TriggerResubmit, StatePending)

	return b.Build(current)
}
