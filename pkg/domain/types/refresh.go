package types

// RefreshStatus represents the outcome of a refresh attempt
type RefreshStatus string

const (
	RefreshStatusSucceeded RefreshStatus = "succeeded"
	RefreshStatusFailed    RefreshStatus = "failed"
)

// String returns the string representation of the status
func (s RefreshStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s RefreshStatus) IsValid() bool {
	switch s {
	case RefreshStatusSucceeded, RefreshStatusFailed:
		return true
	default:
		return false
	}
}

// RefreshTrigger represents what started a refresh
type RefreshTrigger string

const (
	RefreshTriggerStartup  RefreshTrigger = "startup"
	RefreshTriggerSchedule RefreshTrigger = "schedule"
	RefreshTriggerManual   RefreshTrigger = "manual"
	RefreshTriggerOnDemand RefreshTrigger = "on_demand"
	RefreshTriggerStale    RefreshTrigger = "stale"
)

// String returns the string representation of the trigger
func (t RefreshTrigger) String() string {
	return string(t)
}

// IsValid checks if the trigger is valid
func (t RefreshTrigger) IsValid() bool {
	switch t {
	case RefreshTriggerStartup, RefreshTriggerSchedule, RefreshTriggerManual,
		RefreshTriggerOnDemand, RefreshTriggerStale:
		return true
	default:
		return false
	}
}
