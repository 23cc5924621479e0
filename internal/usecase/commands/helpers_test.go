//go:build unit

package commands_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"roomledger/internal/domain/booking"

	"github.com/stretchr/testify/require"
)

func referenceOf(t *testing.T, payload []byte) string {
	t.Helper()
	var body struct {
		Reference string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	return body.Reference
}

var referenceSeq = 10000

// nextReference hands out distinct references for seeded bookings.
func nextReference() booking.Reference {
	referenceSeq++
	return booking.Reference(fmt.Sprintf("PL%05d", referenceSeq))
}
