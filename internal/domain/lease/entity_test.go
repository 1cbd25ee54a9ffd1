//go:build unit

package lease_test

import (
	"testing"
	"time"

	"slot-hold-gateway/internal/domain/lease"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLease(expiresAt time.Time) *lease.Lease {
	start := expiresAt.Add(-3 * time.Minute)
	return lease.NewLease(
		"ts-1",
		uuid.New(), uuid.New(),
		"sched-1", "2026-09-01",
		start, start.Add(30*time.Minute), expiresAt,
	)
}

func TestLease(t *testing.T) {
	now := time.Date(2026, 9, 1, 1, 0, 0, 0, time.UTC)

	t.Run("new lease is active", func(t *testing.T) {
		l := newLease(now.Add(180 * time.Second))
		assert.Equal(t, lease.StatusActive, l.Status())
		assert.Equal(t, "ts-1", l.TimeslotID())
	})

	t.Run("remaining is derived from the absolute expiry", func(t *testing.T) {
		l := newLease(now.Add(180 * time.Second))

		assert.Equal(t, 180*time.Second, l.Remaining(now))
		assert.Equal(t, 30*time.Second, l.Remaining(now.Add(150*time.Second)))
		assert.Equal(t, -20*time.Second, l.Remaining(now.Add(200*time.Second)))
	})

	t.Run("expiry boundary", func(t *testing.T) {
		l := newLease(now.Add(180 * time.Second))

		assert.False(t, l.ExpiredAt(now.Add(179*time.Second)))
		assert.True(t, l.ExpiredAt(now.Add(180*time.Second)))
		assert.True(t, l.ExpiredAt(now.Add(181*time.Second)))
	})

	t.Run("transitions leave the active state exactly once", func(t *testing.T) {
		cases := []struct {
			name       string
			transition func(*lease.Lease) error
			want       lease.Status
		}{
			{name: "release", transition: (*lease.Lease).Release, want: lease.StatusReleased},
			{name: "expire", transition: (*lease.Lease).Expire, want: lease.StatusExpired},
			{name: "supersede", transition: (*lease.Lease).Supersede, want: lease.StatusSuperseded},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				l := newLease(now.Add(180 * time.Second))
				require.NoError(t, tc.transition(l))
				assert.Equal(t, tc.want, l.Status())

				// terminal states reject further transitions
				assert.ErrorIs(t, l.Release(), lease.ErrNotActive)
				assert.ErrorIs(t, l.Expire(), lease.ErrNotActive)
				assert.ErrorIs(t, l.Supersede(), lease.ErrNotActive)
				assert.Equal(t, tc.want, l.Status())
			})
		}
	})
}
