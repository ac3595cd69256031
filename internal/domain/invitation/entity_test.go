package invitation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusAccepted, StatusCompleted, true},
		{StatusPending, StatusCompleted, false}, // must pass through accepted
		{StatusAccepted, StatusPending, false},  // no back-transitions
		{StatusCompleted, StatusAccepted, false},
		{StatusCompleted, StatusPending, false},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.to),
			"CanTransition(%s, %s)", c.from, c.to)
	}
}
