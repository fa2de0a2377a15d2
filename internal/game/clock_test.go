package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Wait(t *testing.T) {
	t.Parallel()

	var c RealClock

	assert.NoError(t, c.Wait(context.Background(), 0))
	assert.NoError(t, c.Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Wait(ctx, 0), context.Canceled)
	assert.ErrorIs(t, c.Wait(ctx, time.Hour), context.Canceled)
}
