package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectStatusTransitions(t *testing.T) {
	legal := []struct {
		from, to ProjectStatus
	}{
		{ProjectDraft, ProjectPublished},
		{ProjectPublished, ProjectBidding},
		{ProjectBidding, ProjectAwarded},
		{ProjectAwarded, ProjectInProgress},
		{ProjectInProgress, ProjectCompleted},
		{ProjectDraft, ProjectCancelled},
		{ProjectPublished, ProjectCancelled},
		{ProjectBidding, ProjectCancelled},
		{ProjectAwarded, ProjectCancelled},
		{ProjectInProgress, ProjectCancelled},
	}
	for _, tc := range legal {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	illegal := []struct {
		from, to ProjectStatus
	}{
		{ProjectDraft, ProjectBidding},
		{ProjectDraft, ProjectCompleted},
		{ProjectPublished, ProjectAwarded},
		{ProjectBidding, ProjectCompleted},
		{ProjectCompleted, ProjectCancelled},
		{ProjectCancelled, ProjectPublished},
		{ProjectCompleted, ProjectInProgress},
		{ProjectAwarded, ProjectBidding},
	}
	for _, tc := range illegal {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestProjectStatusTerminal(t *testing.T) {
	assert.True(t, ProjectCompleted.Terminal())
	assert.True(t, ProjectCancelled.Terminal())
	assert.False(t, ProjectDraft.Terminal())
	assert.False(t, ProjectInProgress.Terminal())
}

func TestBidStatusTransitions(t *testing.T) {
	assert.True(t, BidPending.CanTransitionTo(BidAccepted))
	assert.True(t, BidPending.CanTransitionTo(BidRejected))
	assert.False(t, BidAccepted.CanTransitionTo(BidRejected))
	assert.False(t, BidRejected.CanTransitionTo(BidAccepted))
	assert.False(t, BidAccepted.CanTransitionTo(BidPending))
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentPending.CanTransitionTo(PaymentCompleted))
	assert.True(t, PaymentPending.CanTransitionTo(PaymentFailed))
	assert.True(t, PaymentCompleted.CanTransitionTo(PaymentRefunded))

	// A payment that never completed cannot be refunded; failed is terminal.
	assert.False(t, PaymentPending.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentFailed.CanTransitionTo(PaymentCompleted))
	assert.False(t, PaymentFailed.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentPending))
}

func TestValidEnumValues(t *testing.T) {
	assert.True(t, ValidUserRole(RoleCompany))
	assert.True(t, ValidUserRole(RoleNGO))
	assert.False(t, ValidUserRole(UserRole("superuser")))

	assert.True(t, ValidProjectStatus(ProjectInProgress))
	assert.False(t, ValidProjectStatus(ProjectStatus("archived")))

	assert.True(t, ValidBidStatus(BidPending))
	assert.False(t, ValidBidStatus(BidStatus("withdrawn")))

	assert.True(t, ValidPaymentStatus(PaymentRefunded))
	assert.False(t, ValidPaymentStatus(PaymentStatus("chargeback")))

	assert.True(t, ValidMessageType(MessageSystem))
	assert.False(t, ValidMessageType(MessageType("video")))
}
