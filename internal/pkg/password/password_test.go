//go:build unit

package password_test

import (
	"testing"

	"venue-booking/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPasswordWithCost("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, password.ComparePassword(hash, "s3cret!"))
	assert.Error(t, password.ComparePassword(hash, "S3cret!"))
}

func TestHashPasswordWithCost_Rejects(t *testing.T) {
	_, err := password.HashPasswordWithCost("", bcrypt.MinCost)
	assert.ErrorIs(t, err, password.ErrInvalidPassword)

	_, err = password.HashPasswordWithCost("x", bcrypt.MaxCost+1)
	assert.ErrorIs(t, err, password.ErrInvalidCost)

	_, err = password.HashPasswordWithCost("x", bcrypt.MinCost-1)
	assert.ErrorIs(t, err, password.ErrInvalidCost)
}
