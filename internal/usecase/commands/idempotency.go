package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"roomledger/internal/infra"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var errIdempotencyRace = errs.New("idempotency key claimed by a concurrent request")

// BookingResult identifies the booking a command produced or touched.
type BookingResult struct {
	BookingID  uuid.UUID
	Reference  string
	IsReplayed bool
}

func requestHash(payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errs.Wrap(err, "encode request payload")
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// requestKey falls back to a fresh key so a call without request_id is
// simply not deduplicated.
func requestKey(requestID string) string {
	if key := strings.TrimSpace(requestID); key != "" {
		return key
	}
	return uuid.NewString()
}

// replayOf returns the booking recorded for (key, scope), nil when the key is
// unused, or ErrDuplicateRequest when it was used with a different payload.
func replayOf(ctx context.Context, reads shared.CommandReads, key string, scope shared.IdempotencyScope, hash string) (*BookingResult, error) {
	rec, err := reads.IdempotencyByKey(ctx, key, scope)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if rec.RequestHash != hash {
		return nil, errs.Wrapf(errs.ErrDuplicateRequest, "request_id %q", key)
	}

	b, err := reads.BookingByID(ctx, rec.BookingID)
	if err != nil {
		return nil, err
	}
	return &BookingResult{BookingID: b.ID(), Reference: b.Reference().String(), IsReplayed: true}, nil
}

// claimKey records the key in the same transaction as the write. Losing the
// race to a concurrent insert is transient: the retry replays their result.
func claimKey(ctx context.Context, tx shared.Tx, key string, scope shared.IdempotencyScope, hash string, bookingID uuid.UUID, now time.Time) error {
	inserted, err := tx.Idempotency().TryInsert(ctx, shared.IdempotencyRecord{
		Key:         key,
		Scope:       scope,
		RequestHash: hash,
		BookingID:   bookingID,
		CreatedAt:   now,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return errs.Mark(errs.Wrapf(errIdempotencyRace, "request_id %q", key), shared.ErrRetryable)
	}
	return nil
}

func enqueueNotification(ctx context.Context, tx shared.Tx, kind string, bookingID uuid.UUID, reference string, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"reference":  reference,
		"type":       kind,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", kind, payload, now)
}
