package domain

import "testing"

func TestModificationStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to ModificationStatus
		want     bool
	}{
		{ModificationStatusPending, ModificationStatusAccepted, true},
		{ModificationStatusPending, ModificationStatusRejected, true},
		{ModificationStatusPending, ModificationStatusCompleted, false},
		{ModificationStatusPending, ModificationStatusNeedsExtraPayment, false},
		{ModificationStatusAccepted, ModificationStatusCompleted, true},
		{ModificationStatusAccepted, ModificationStatusNeedsExtraPayment, true},
		{ModificationStatusAccepted, ModificationStatusRejected, false},
		{ModificationStatusNeedsExtraPayment, ModificationStatusAccepted, true},
		{ModificationStatusNeedsExtraPayment, ModificationStatusCompleted, false},
		{ModificationStatusRejected, ModificationStatusPending, false},
		{ModificationStatusCompleted, ModificationStatusAccepted, false},
		{ModificationStatusCompleted, ModificationStatusCompleted, true},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
