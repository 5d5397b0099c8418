package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs an error that cannot be reported to the caller in a more specific way.
// The values attached with goerr.V are logged as attributes.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	args := []any{"error", err}
	for k, v := range goerr.Values(err) {
		args = append(args, k, v)
	}
	ctxlog.From(ctx).Error("application error", args...)
}
