package gateway

import (
	"testing"

	"TaiGate/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameFromEvent(t *testing.T) {
	evt := events.NewTick("PFCF", events.Tick{
		Symbol:    "TXFA6",
		Price:     17000,
		Volume:    3,
		Bid:       16999,
		Ask:       17001,
		BidVolume: 10,
		AskVolume: 12,
	})

	frame := frameFromEvent(evt)

	assert.Equal(t, "TXFA6", frame.Symbol)
	assert.Equal(t, float64(17000), frame.Price)
	assert.Equal(t, "PFCF", frame.Source)
	assert.NotEmpty(t, frame.Time)

	payload, err := json.Marshal(frame)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"symbol":"TXFA6"`)
	assert.Contains(t, string(payload), `"bid_volume":10`)
}
