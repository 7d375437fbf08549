package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/symtons/leavedesk/internal/leave"
)

func TestStatusTransitions(t *testing.T) {
	terminal := []leave.Status{leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled}

	t.Run("success pending moves to any terminal state", func(t *testing.T) {
		for _, to := range terminal {
			assert.True(t, leave.CanTransition(leave.StatusPending, to), "Pending -> %s", to)
		}
	})

	t.Run("negative terminal states never move again", func(t *testing.T) {
		for _, from := range terminal {
			assert.True(t, from.Terminal())
			for _, to := range append(terminal, leave.StatusPending) {
				assert.False(t, leave.CanTransition(from, to), "%s -> %s", from, to)
			}
		}
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("success case and spelling variants canonicalize", func(t *testing.T) {
		cases := map[string]leave.Status{
			"pending":   leave.StatusPending,
			"PENDING":   leave.StatusPending,
			" Approved": leave.StatusApproved,
			"rejected":  leave.StatusRejected,
			"cancelled": leave.StatusCancelled,
			"canceled":  leave.StatusCancelled,
		}
		for raw, want := range cases {
			got, ok := leave.ParseStatus(raw)
			assert.True(t, ok, raw)
			assert.Equal(t, want, got)
		}
	})

	t.Run("negative unknown status", func(t *testing.T) {
		_, ok := leave.ParseStatus("archived")

		assert.False(t, ok)
	})
}
