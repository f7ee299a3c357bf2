package simulator

import (
	"os"
	"testing"
	"time"

	"TaiGate/internal/config"
	"TaiGate/internal/events"
	"TaiGate/internal/exchanges"
	"TaiGate/internal/models"
	"TaiGate/pkg/logger"

	"github.com/sanity-io/litter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSimulator(t *testing.T) *Simulator {
	s := New(config.Load(), logger.New(os.Stdout, logger.ErrorLevel))

	res := s.Connect(models.LoginCredentials{Account: "SIM001", Password: "x"})
	require.True(t, res.Success)

	return s
}

func buy(symbol string, qty int, price float64) models.OrderRequest {
	return models.OrderRequest{
		Account:   "SIM001",
		Symbol:    symbol,
		Side:      models.SideBuy,
		Quantity:  qty,
		Price:     price,
		OrderType: models.OrderTypeLimit,
	}
}

func sell(symbol string, qty int, price float64) models.OrderRequest {
	req := buy(symbol, qty, price)
	req.Side = models.SideSell
	return req
}

func TestConnectValidation(t *testing.T) {
	s := New(config.Load(), logger.New(os.Stdout, logger.ErrorLevel))

	res := s.Connect(models.LoginCredentials{})
	assert.False(t, res.Success)
	assert.Equal(t, "EMPTY_CREDENTIALS", res.ErrorCode)
	assert.False(t, s.IsConnected())
}

func TestNameIsStable(t *testing.T) {
	s := testSimulator(t)
	assert.Equal(t, "SIMULATOR", s.Name())
	assert.Equal(t, "SIMULATOR", s.Name())
}

func TestOrderLifecycleEvents(t *testing.T) {
	s := testSimulator(t)

	var got []events.Type
	cb := func(evt *events.Event) { got = append(got, evt.Type) }
	s.Events().Subscribe(events.OrderAccepted, cb)
	s.Events().Subscribe(events.OrderFilled, cb)

	res := s.SendOrder(buy("TXFA6", 2, 17000))
	require.True(t, res.Success)
	require.NotEmpty(t, res.OrderID)

	assert.Equal(t, []events.Type{events.OrderAccepted, events.OrderFilled}, got)
}

func TestPositionBookkeeping(t *testing.T) {
	s := testSimulator(t)

	s.SendOrder(buy("TXFA6", 2, 17000))
	s.SendOrder(buy("TXFA6", 2, 17100))

	rs, err := s.GetPositions("SIM001")
	require.NoError(t, err)
	require.Len(t, rs, 1, litter.Sdump(rs))

	assert.Equal(t, models.SideBuy, rs[0].Side)
	assert.Equal(t, 4, rs[0].Quantity)
	assert.Equal(t, float64(17050), rs[0].AveragePrice, "average cost is quantity weighted")
}

func TestPositionNetsToZero(t *testing.T) {
	s := testSimulator(t)

	s.SendOrder(buy("TXFA6", 3, 17000))
	s.SendOrder(sell("TXFA6", 3, 17200))

	rs, err := s.GetPositions("SIM001")
	require.NoError(t, err)
	assert.Empty(t, rs, "flat position leaves the book")
}

func TestPositionCrossesZero(t *testing.T) {
	s := testSimulator(t)

	s.SendOrder(buy("TXFA6", 2, 17000))
	s.SendOrder(sell("TXFA6", 5, 17100))

	rs, err := s.GetPositions("SIM001")
	require.NoError(t, err)
	require.Len(t, rs, 1)

	assert.Equal(t, models.SideSell, rs[0].Side)
	assert.Equal(t, 3, rs[0].Quantity)
	assert.Equal(t, float64(17100), rs[0].AveragePrice)
	assert.Equal(t, float64(200), rs[0].RealizedPL)
}

func TestStopOrderRestsAndCancels(t *testing.T) {
	s := testSimulator(t)

	var cancelled int
	s.Events().Subscribe(events.OrderCancelled, func(evt *events.Event) { cancelled++ })

	req := buy("TXFA6", 1, 16500)
	req.OrderType = models.OrderTypeStop
	res := s.SendOrder(req)
	require.True(t, res.Success)

	rs, err := s.GetPositions("SIM001")
	require.NoError(t, err)
	assert.Empty(t, rs, "resting order is not a position")

	require.NoError(t, s.CancelOrder(res.OrderID, "SIM001"))
	assert.Equal(t, 1, cancelled)

	assert.Equal(t, exchanges.ErrOrderNotFound, s.CancelOrder(res.OrderID, "SIM001"))
}

func TestRejectBadQuantity(t *testing.T) {
	s := testSimulator(t)

	res := s.SendOrder(buy("TXFA6", 0, 17000))
	assert.False(t, res.Success)
	assert.Equal(t, "BAD_QUANTITY", res.ErrorCode)
}

func TestNotConnectedPaths(t *testing.T) {
	s := New(config.Load(), logger.New(os.Stdout, logger.ErrorLevel))

	res := s.SendOrder(buy("TXFA6", 1, 17000))
	assert.Equal(t, "NOT_CONNECTED", res.ErrorCode)

	_, err := s.GetPositions("SIM001")
	assert.Equal(t, exchanges.ErrNoConnect, err)

	assert.Error(t, s.SubscribeMarketData([]string{"TXFA6"}, nil))
}

func TestAccountBalance(t *testing.T) {
	s := testSimulator(t)

	balance, err := s.GetAccountBalance("SIM001")
	require.NoError(t, err)
	assert.Equal(t, float64(1000000), balance["TWD"])

	unknown, err := s.GetAccountBalance("NOBODY")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestMarketDataFeed(t *testing.T) {
	s := testSimulator(t)

	ticks := make(chan *events.Event, 64)
	err := s.SubscribeMarketData([]string{"TXFA6"}, func(evt *events.Event) {
		select {
		case ticks <- evt:
		default:
		}
	})
	require.NoError(t, err)

	select {
	case evt := <-ticks:
		require.NotNil(t, evt.Tick)
		assert.Equal(t, "TXFA6", evt.Tick.Symbol)
		assert.Greater(t, evt.Tick.Price, float64(0))
	case <-time.After(2 * time.Second):
		t.Fatal("no tick within deadline")
	}

	require.NoError(t, s.UnsubscribeMarketData([]string{"TXFA6"}))
	assert.True(t, s.Disconnect())
}
