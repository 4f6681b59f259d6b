package password_test

import (
	"mentorbook/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Run("salted", func(t *testing.T) {
		first, err := password.Hash("correct horse")
		require.NoError(t, err)

		second, err := password.Hash("correct horse")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, strings.HasPrefix(first, "$2a$"))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := password.Hash("")

		assert.ErrorIs(t, err, password.ErrEmptyPassword)
	})

	t.Run("longer than bcrypt accepts", func(t *testing.T) {
		_, err := password.Hash(strings.Repeat("a", 73))

		assert.ErrorContains(t, err, "failed to hash password")
	})
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name   string
		plain  string
		hashed string
		err    error
	}{
		{name: "match", plain: "correct horse", hashed: hashed},
		{name: "mismatch", plain: "battery staple", hashed: hashed, err: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hashed: hashed, err: password.ErrInvalidPassword},
		{name: "empty hash", plain: "correct horse", hashed: "", err: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hashed)

			if tt.err == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("malformed hash", func(t *testing.T) {
		err := password.Verify("correct horse", "not-a-hash")

		assert.ErrorContains(t, err, "failed to verify password")
	})
}
