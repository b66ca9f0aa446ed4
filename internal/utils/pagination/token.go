package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeLedgerToken creates a base64 encoded keyset cursor from the creation time and id
// of the last ledger entry on a page.
func EncodeLedgerToken(createdAt time.Time, transactionID int64) string {
	tokenStr := fmt.Sprintf("%s|%d", createdAt.UTC().Format(timeFormat), transactionID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeLedgerToken parses a cursor produced by EncodeLedgerToken.
func DecodeLedgerToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}

	return createdAt, id, nil
}

// After reports whether (createdAt, id) sorts strictly after the cursor position,
// using the ledger order created_at ASC, transaction_id ASC.
func After(createdAt time.Time, id int64, cursorAt time.Time, cursorID int64) bool {
	if createdAt.Equal(cursorAt) {
		return id > cursorID
	}
	return createdAt.After(cursorAt)
}
