package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminToken(t *testing.T) {
	token, err := GenerateAdminToken("secret", "admin", time.Now())
	require.NoError(t, err)

	username, err := ParseAdminToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	_, err = ParseAdminToken("other-secret", token)
	assert.Error(t, err)

	expired, err := GenerateAdminToken("secret", "admin", time.Now().Add(-2*AdminTokenTTL))
	require.NoError(t, err)
	_, err = ParseAdminToken("secret", expired)
	assert.Error(t, err)
}

func TestCheckAdminPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, CheckAdminPassword(string(hash), "s3cret"))
	assert.ErrorIs(t, CheckAdminPassword(string(hash), "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckAdminPassword("", "s3cret"), ErrInvalidCredentials)
}
