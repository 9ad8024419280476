package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUUID(t *testing.T) {
	id, err := ValidateUUID("550e8400-e29b-41d4-a716-446655440000", "id")
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())

	_, err = ValidateUUID("", "id")
	assert.EqualError(t, err, "id is required")

	_, err = ValidateUUID("not-a-uuid", "id")
	assert.EqualError(t, err, "id is not a valid UUID")

	id, err = ValidateUUID("  550e8400-e29b-41d4-a716-446655440000  ", "id")
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-08-01", "rentMonth")
	require.NoError(t, err)
	assert.Equal(t, 2025, date.Year())
	assert.Equal(t, 8, int(date.Month()))

	_, err = ParseDate("01-08-2025", "rentMonth")
	assert.EqualError(t, err, "rentMonth must be in YYYY-MM-DD format")
}

func TestSanitizeSearchQuery(t *testing.T) {
	assert.Equal(t, "sharma", SanitizeSearchQuery("  sharma "))
	assert.Equal(t, "sharma", SanitizeSearchQuery("sh%ar_ma"))
	assert.Equal(t, "", SanitizeSearchQuery("   "))
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset := ValidatePaginationParams(0, -5)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePaginationParams(1000, 20)
	assert.Equal(t, 500, limit)
	assert.Equal(t, 20, offset)
}
