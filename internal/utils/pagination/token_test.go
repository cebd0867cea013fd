package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard date/time values
	effectiveDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	postedAt := time.Date(2025, 6, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(effectiveDate, postedAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedPostedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, effectiveDate, decodedDate, "Effective date should match after decode")
	assert.Equal(t, postedAt, decodedPostedAt, "Posted at time should match after decode")

	// Zero time values
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime)
	decodedZeroDate, decodedZeroTime, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroDate, "Zero date should match after decode")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero time should match after decode")

	// Current time values
	now := time.Now().UTC()
	nowToken := EncodeToken(now, now)
	decodedNowDate, decodedNowTime, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNowDate), "Current date should match after decode")
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separator
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // Base64 encoded date without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Invalid date format
	invalidDateToken := "bm90YWRhdGV8MjAyMy0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla" // "notadate|2023-05-15T14:30:45.123456789Z"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "effective date parse", "Error should mention date parsing issue")
}

func TestEncodeDecodeIDToken(t *testing.T) {
	id := "0b90e79f-99dd-4bd8-b2d5-24e8b33f7c8a"
	token := EncodeIDToken(id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeIDToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, id, decoded, "ID should match after decode")
}

func TestDecodeIDTokenError(t *testing.T) {
	_, err := DecodeIDToken("!!not base64!!")
	assert.Error(t, err, "Should return an error for invalid base64")

	_, err = DecodeIDToken("")
	assert.Error(t, err, "Should return an error for an empty token")
}
