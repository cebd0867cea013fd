package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded token from an effective date and posted
// time. This is the cursor used for journal and entry listings.
func EncodeToken(effectiveDate time.Time, postedAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", effectiveDate.Format(timeFormat), postedAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into effective date and
// posted time.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	effectiveDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (effective date parse): %w", err)
	}

	postedAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (posted_at parse): %w", err)
	}

	return effectiveDate, postedAt, nil
}

// EncodeIDToken creates a token from a single opaque identifier. Used by the
// account listing, whose cursor is the last-seen account ID.
func EncodeIDToken(id string) string {
	return base64.StdEncoding.EncodeToString([]byte(id))
}

// DecodeIDToken decodes a single-identifier token.
func DecodeIDToken(token string) (string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	if len(decodedBytes) == 0 {
		return "", fmt.Errorf("invalid pagination token format (empty)")
	}
	return string(decodedBytes), nil
}
