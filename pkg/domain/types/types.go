package types

import (
	"github.com/google/uuid"
)

// StateName represents a value of the Province_State column
type StateName string

// String returns the string representation
func (s StateName) String() string {
	return string(s)
}

// CountyName represents a value of the Admin2 column
type CountyName string

// String returns the string representation
func (c CountyName) String() string {
	return string(c)
}

// SnapshotID identifies one fetched copy of the raw table
type SnapshotID string

// String returns the string representation
func (id SnapshotID) String() string {
	return string(id)
}

// NewSnapshotID creates a new time-ordered SnapshotID
func NewSnapshotID() SnapshotID {
	return SnapshotID(newV7())
}

// RefreshID identifies one refresh attempt
type RefreshID string

// String returns the string representation
func (id RefreshID) String() string {
	return string(id)
}

// NewRefreshID creates a new time-ordered RefreshID
func NewRefreshID() RefreshID {
	return RefreshID(newV7())
}

func newV7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
