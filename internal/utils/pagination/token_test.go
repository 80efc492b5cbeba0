package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "5c0e1a9e-3f0b-4b7a-9d55-0d6f4a3b2c11")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, createdAt, decodedAt, "Timestamp should match after decode")
	assert.Equal(t, "5c0e1a9e-3f0b-4b7a-9d55-0d6f4a3b2c11", decodedID)

	// Non-UTC input is normalised so tokens compare the same way the database does
	local := time.Date(2024, 5, 15, 16, 30, 45, 0, time.FixedZone("EET", 2*60*60))
	decodedLocal, _, err := DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	emptyID := base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|"))
	_, _, err = DecodeToken(emptyID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badTime := base64.StdEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badTime)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "time parse")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"1000", "cash"}
	decoded, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)

	// Splitting an empty string yields one empty field
	decodedEmpty, err := DecodeMultiFieldToken(EncodeMultiFieldToken())
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, decodedEmpty)

	_, err = DecodeMultiFieldToken("%%%")
	assert.Error(t, err)
}
