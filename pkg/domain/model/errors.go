package model

import "github.com/m-mizutani/goerr/v2"

// MsgInvalidTimeRange is shown to the user instead of a chart when from >= to
const MsgInvalidTimeRange = "Not valid time range period."

// Error tags used to map domain failures to responses
var (
	ErrTagDataUnavailable  = goerr.NewTag("data_unavailable")
	ErrTagInvalidTimeRange = goerr.NewTag("invalid_time_range")
	ErrTagInvalidRequest   = goerr.NewTag("invalid_request")
	ErrTagNotFound         = goerr.NewTag("not_found")
)

// Sentinel errors for domain operations
var (
	ErrRefreshNotFound = goerr.New("refresh record not found")
)
