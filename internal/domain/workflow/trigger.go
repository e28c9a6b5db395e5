package workflow

// Trigger represents a user action that can cause a state transition
type Trigger string

const (
	TriggerSubmit   Trigger = "submit"
	TriggerApprove  Trigger = "approve"
	TriggerReject   Trigger = "reject"
	TriggerReturn   Trigger = "return"
	TriggerResubmit Trigger = "resubmit"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
