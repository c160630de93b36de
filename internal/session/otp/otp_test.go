package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinet/pkg/platform/sentinel"
)

func TestIssueAndVerify(t *testing.T) {
	store := NewStore()

	code, err := store.Issue("demo@cabinet.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	require.NoError(t, store.Verify("demo@cabinet.com", code))

	// One-shot: a second verify finds nothing pending.
	err = store.Verify("demo@cabinet.com", code)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestVerifyFailureModes(t *testing.T) {
	store := NewStore()

	t.Run("no pending code", func(t *testing.T) {
		err := store.Verify("nobody@cabinet.com", "123456")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("mismatched code keeps the pending entry", func(t *testing.T) {
		code, err := store.Issue("demo@cabinet.com")
		require.NoError(t, err)

		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}
		assert.ErrorIs(t, store.Verify("demo@cabinet.com", wrong), sentinel.ErrInvalidState)
		assert.NoError(t, store.Verify("demo@cabinet.com", code))
	})

	t.Run("reissue replaces the previous code", func(t *testing.T) {
		first, err := store.Issue("demo@cabinet.com")
		require.NoError(t, err)
		second, err := store.Issue("demo@cabinet.com")
		require.NoError(t, err)

		if first != second {
			assert.ErrorIs(t, store.Verify("demo@cabinet.com", first), sentinel.ErrInvalidState)
		}
		assert.NoError(t, store.Verify("demo@cabinet.com", second))
	})
}

func TestExpiry(t *testing.T) {
	current := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore().WithClock(func() time.Time { return current })

	code, err := store.Issue("demo@cabinet.com")
	require.NoError(t, err)

	// Advance past the 10-minute window; even the correct code fails and the
	// pending entry is dropped.
	current = current.Add(TTL + time.Second)
	assert.ErrorIs(t, store.Verify("demo@cabinet.com", code), sentinel.ErrExpired)
	assert.ErrorIs(t, store.Verify("demo@cabinet.com", code), sentinel.ErrNotFound)
}
