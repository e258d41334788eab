package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Display(t *testing.T) {
	testCases := []struct {
		status Status
		want   string
	}{
		{StatusReady, "READY FOR PICKUP"},
		{StatusDelivered, "DELIVERED"},
		{StatusCancelled, "CANCELLED"},
		{StatusIssued, "IN PROCESS"},
		{StatusInProcess, "IN PROCESS"},
		// Mapping is case-insensitive on the stored string.
		{Status("READY"), "READY FOR PICKUP"},
		{Status("delivered"), "DELIVERED"},
		{Status("CanCelled"), "CANCELLED"},
		// Anything unknown reads as in process.
		{Status("mystery"), "IN PROCESS"},
		{Status(""), "IN PROCESS"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.status.Display())
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), "%q should be valid", s)
	}
	assert.True(t, Status("ready").Valid(), "validity check is case-insensitive")
	assert.False(t, Status("Shipped").Valid())
	assert.False(t, Status("").Valid())
}
