package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestConnectionGauge(t *testing.T) {
	before := testutil.ToFloat64(ActiveWebSocketConnections)
	IncConnection()
	IncConnection()
	DecConnection()
	after := testutil.ToFloat64(ActiveWebSocketConnections)
	assert.Equal(t, before+1, after)
}

func TestGameCounters(t *testing.T) {
	GamesStarted.WithLabelValues("chess").Inc()
	val := testutil.ToFloat64(GamesStarted.WithLabelValues("chess"))
	assert.GreaterOrEqual(t, val, float64(1))

	GamesCompleted.WithLabelValues("chess", "checkmate").Inc()
	val = testutil.ToFloat64(GamesCompleted.WithLabelValues("chess", "checkmate"))
	assert.GreaterOrEqual(t, val, float64(1))
}

func TestRateLimitCounters(t *testing.T) {
	RateLimitRequests.WithLabelValues("join").Inc()
	RateLimitExceeded.WithLabelValues("fresh_join_cap").Inc()

	assert.GreaterOrEqual(t, testutil.ToFloat64(RateLimitRequests.WithLabelValues("join")), float64(1))
	assert.GreaterOrEqual(t, testutil.ToFloat64(RateLimitExceeded.WithLabelValues("fresh_join_cap")), float64(1))
}

func TestRoomGauges(t *testing.T) {
	ActiveRooms.WithLabelValues("chess").Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(ActiveRooms.WithLabelValues("chess")))

	RoomOccupancy.WithLabelValues("ABC123").Set(2)
	assert.Equal(t, float64(2), testutil.ToFloat64(RoomOccupancy.WithLabelValues("ABC123")))
}
