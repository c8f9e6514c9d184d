package auctions

import (
	"errors"
	"testing"

	"remate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_FollowsLifecycleTable(t *testing.T) {
	legal := []struct {
		from   domain.AuctionStatus
		action Action
		to     domain.AuctionStatus
	}{
		{domain.AuctionPending, ActionStart, domain.AuctionInProgress},
		{domain.AuctionPending, ActionCancel, domain.AuctionCancelled},
		{domain.AuctionInProgress, ActionCancel, domain.AuctionCancelled},
		{domain.AuctionInProgress, ActionFinish, domain.AuctionFinished},
		{domain.AuctionCancelled, ActionRestore, domain.AuctionPending},
	}
	for _, tc := range legal {
		got, err := Next(tc.from, tc.action)
		require.NoError(t, err, "%s from %s", tc.action, tc.from)
		assert.Equal(t, tc.to, got)
	}
}

func TestNext_RejectsEverythingElse(t *testing.T) {
	illegal := []struct {
		from   domain.AuctionStatus
		action Action
	}{
		{domain.AuctionPending, ActionFinish},
		{domain.AuctionPending, ActionRestore},
		{domain.AuctionInProgress, ActionStart},
		{domain.AuctionCancelled, ActionStart},
		{domain.AuctionCancelled, ActionFinish},
		{domain.AuctionFinished, ActionCancel},
		{domain.AuctionFinished, ActionRestore},
	}
	for _, tc := range illegal {
		_, err := Next(tc.from, tc.action)
		assert.True(t, errors.Is(err, ErrIllegalTransition), "%s from %s", tc.action, tc.from)
	}

	_, err := Next(domain.AuctionPending, Action("pause"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(domain.AuctionCancelled, domain.AuctionPending))
	assert.False(t, CanTransition(domain.AuctionFinished, domain.AuctionPending))
	assert.False(t, CanTransition(domain.AuctionPending, domain.AuctionFinished))
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("finish")
	require.NoError(t, err)
	assert.Equal(t, ActionFinish, a)
	_, err = ParseAction("pause")
	assert.Error(t, err)
}
