package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDemoCredentialsVerify(t *testing.T) {
	users := Users()
	require.Len(t, users, 3)

	passwords := map[string]string{
		"panida": "12345qazAZ",
		"kuyyy":  "12345qazAZ",
		"admin":  "admin123",
	}

	for _, u := range users {
		want, ok := passwords[u.Username]
		require.True(t, ok, "unexpected seed user %s", u.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(want)),
			"password for %s should verify", u.Username)
		assert.NotEqual(t, want, u.Password, "password must not be stored in plaintext")
	}
}

func TestFixturesAreConsistent(t *testing.T) {
	users := Users()
	ids := map[int64]bool{}
	for _, u := range users {
		assert.False(t, ids[u.ID], "duplicate user id %d", u.ID)
		ids[u.ID] = true
	}

	for _, m := range Messages() {
		assert.True(t, ids[m.UserID], "message %d references unknown user %d", m.ID, m.UserID)
		assert.NotEmpty(t, m.Content)
		assert.Nil(t, m.UpdatedAt)
	}

	themes := Themes()
	require.Len(t, themes, 4)
	found := false
	for _, th := range themes {
		if th.ID == DefaultThemeID {
			found = true
		}
	}
	assert.True(t, found, "default theme id must be in the catalog")
}
