package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusQuoteSent, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusApproved, false},
		{StatusQuoteSent, StatusApproved, true},
		{StatusApproved, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusPaid, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusPaid, StatusDraft, false},
		{StatusCancelled, StatusDraft, true},
		{Status("bogus"), StatusDraft, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPaid.Valid())
	assert.False(t, Status("archived").Valid())
	assert.Empty(t, StatusPaid.NextStatuses())
	assert.Equal(t, []Status{StatusDraft}, StatusCancelled.NextStatuses())
}

func TestContactName(t *testing.T) {
	p := &Project{}
	assert.Equal(t, "", p.ContactName())
	p.Contact = &Contact{Name: "Dana Cohen"}
	assert.Equal(t, "Dana Cohen", p.ContactName())
}
