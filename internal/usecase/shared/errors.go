package shared

import (
	"roomledger/internal/infra"
	"roomledger/internal/pkg/errs"
)

// NotFoundAs replaces a repository not-found error with the domain's coded
// sentinel, keeping the cause for logs.
func NotFoundAs(err error, target error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, target)
	}
	return err
}
