package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAfterWrite_IsExpired(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := AfterWrite{TTL: time.Second}

	tests := map[string]struct {
		now     time.Time
		expired bool
	}{
		"just written":        {now: base, expired: false},
		"half way":            {now: base.Add(500 * time.Millisecond), expired: false},
		"one tick before ttl": {now: base.Add(time.Second - time.Nanosecond), expired: false},
		"exactly ttl":         {now: base.Add(time.Second), expired: true},
		"well past ttl":       {now: base.Add(time.Hour), expired: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expired, exp.IsExpired(base, tc.now))
		})
	}
}
