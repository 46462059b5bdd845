package main

import (
	"testing"

	"booksapi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminCredentials(t *testing.T) {
	t.Run("plaintext password is hashed", func(t *testing.T) {
		creds, err := adminCredentials(config.Config{AdminUsername: "admin", AdminPassword: "password"})
		require.NoError(t, err)
		assert.True(t, creds.Check("admin", "password"))
	})

	t.Run("hash wins over password", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
		require.NoError(t, err)

		creds, err := adminCredentials(config.Config{
			AdminUsername:     "admin",
			AdminPassword:     "password",
			AdminPasswordHash: string(hash),
		})
		require.NoError(t, err)
		assert.True(t, creds.Check("admin", "from-hash"))
		assert.False(t, creds.Check("admin", "password"))
	})

	t.Run("malformed hash", func(t *testing.T) {
		_, err := adminCredentials(config.Config{AdminUsername: "admin", AdminPasswordHash: "not-bcrypt"})
		assert.Error(t, err)
	})
}
