package shared

import (
	"context"
	"io"

	"roomledger/internal/domain/booking"
)

// GenerateReference draws candidates until one is unused.
func GenerateReference(ctx context.Context, reads CommandReads, src io.Reader) (booking.Reference, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		ref, err := booking.NewReference(src)
		if err != nil {
			return "", err
		}
		exists, err := reads.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
}
