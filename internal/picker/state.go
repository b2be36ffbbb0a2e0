package picker

// ResourceRootState tracks the resource-root auto-selection flow.
//
//	Init -> Resolved
//	Init -> Enumerating -> Empty | AutoSelected | AwaitingUserChoice
//	AwaitingUserChoice -> UserSelected | Abandoned
type ResourceRootState int

const (
	StateInit ResourceRootState = iota
	StateResolved
	StateEnumerating
	StateEmpty
	StateAutoSelected
	StateAwaitingUserChoice
	StateUserSelected
	StateAbandoned
)

func (s ResourceRootState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateResolved:
		return "resolved"
	case StateEnumerating:
		return "enumerating"
	case StateEmpty:
		return "empty"
	case StateAutoSelected:
		return "auto-selected"
	case StateAwaitingUserChoice:
		return "awaiting-user-choice"
	case StateUserSelected:
		return "user-selected"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether the flow has finished.
func (s ResourceRootState) Terminal() bool {
	switch s {
	case StateResolved, StateEmpty, StateAutoSelected, StateUserSelected, StateAbandoned:
		return true
	}
	return false
}
