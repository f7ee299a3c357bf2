package events

import (
	"testing"

	"TaiGate/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestNewTickForcesType(t *testing.T) {
	evt := NewTick("test", Tick{Symbol: "TXFA6", Price: 17000})

	assert.Equal(t, TickData, evt.Type)
	assert.NotNil(t, evt.Tick)
	assert.Nil(t, evt.Order)
	assert.Nil(t, evt.Position)
	assert.False(t, evt.Time.IsZero())
	assert.NotNil(t, evt.Data)
}

func TestNewOrderDerivesTypeFromStatus(t *testing.T) {
	tests := []struct {
		status string
		want   Type
	}{
		{"accepted", OrderAccepted},
		{"rejected", OrderRejected},
		{"filled", OrderFilled},
		{"cancelled", OrderCancelled},
		{"working", OrderUpdate},
		{"unknown", OrderUpdate},
		{"", OrderUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			evt := NewOrder("test", Order{OrderID: "1", Status: tt.status})
			assert.Equal(t, tt.want, evt.Type)
		})
	}
}

func TestNewPositionForcesType(t *testing.T) {
	evt := NewPosition("test", Position{Account: "A123", Symbol: "TXFA6"})

	assert.Equal(t, PositionUpdate, evt.Type)
	assert.NotNil(t, evt.Position)
}

func TestNewError(t *testing.T) {
	cause := errors.New("broker down")
	evt := NewError("test", cause)

	assert.Equal(t, Error, evt.Type)
	assert.Equal(t, cause, evt.Err)
	assert.Nil(t, evt.Tick)
}
