package events

import (
	"time"
)

// Type identifies the kind of an emitted event.
type Type string

const (
	/* Connection */
	Connected    Type = "CONNECTED"
	Disconnected Type = "DISCONNECTED"
	LoginSuccess Type = "LOGIN_SUCCESS"
	LoginFailed  Type = "LOGIN_FAILED"
	Error        Type = "ERROR"

	/* Market data */
	TickData    Type = "TICK_DATA"
	BidAskData  Type = "BID_ASK_DATA"
	MarketDepth Type = "MARKET_DEPTH"

	/* Trading */
	OrderAccepted  Type = "ORDER_ACCEPTED"
	OrderRejected  Type = "ORDER_REJECTED"
	OrderFilled    Type = "ORDER_FILLED"
	OrderCancelled Type = "ORDER_CANCELLED"
	OrderUpdate    Type = "ORDER_UPDATE"

	/* Account */
	PositionUpdate Type = "POSITION_UPDATE"
	BalanceUpdate  Type = "BALANCE_UPDATE"
	MarginUpdate   Type = "MARGIN_UPDATE"
)

// Tick is the payload of a market data event.
type Tick struct {
	Symbol    string
	Price     float64
	Volume    int
	Bid       float64
	Ask       float64
	BidVolume int
	AskVolume int
}

// Order is the payload of an order lifecycle event.
// Status is the broker-neutral status string the event type derives from.
type Order struct {
	OrderID  string
	Account  string
	Symbol   string
	Side     string
	Quantity int
	Price    float64
	Status   string
}

// Position is the payload of a position update event.
type Position struct {
	Account      string
	Symbol       string
	Quantity     int
	Side         string
	AveragePrice float64
	UnrealizedPL float64
	RealizedPL   float64
}

// Event is the unit the manager fans out. It is a tagged union: at most one
// of Tick, Order, Position is set, consistent with Type. Events are built by
// the constructors below, never mutated after construction.
type Event struct {
	Type   Type
	Time   time.Time
	Source string
	Data   map[string]interface{}
	Err    error

	Tick     *Tick
	Order    *Order
	Position *Position
}

// orderStatusTypes maps a broker-neutral order status string to the
// event type it produces. Anything else reads as a plain update.
var orderStatusTypes = map[string]Type{
	"accepted":  OrderAccepted,
	"rejected":  OrderRejected,
	"filled":    OrderFilled,
	"cancelled": OrderCancelled,
}

func New(eType Type, source string, data map[string]interface{}) *Event {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Event{
		Type:   eType,
		Time:   time.Now(),
		Source: source,
		Data:   data,
	}
}

// NewTick builds a market data event. The type is always TickData,
// whatever the caller had in mind.
func NewTick(source string, tick Tick) *Event {
	evt := New(TickData, source, nil)
	evt.Tick = &tick
	return evt
}

// NewBidAsk builds a quote event carrying the same tick payload shape.
func NewBidAsk(source string, tick Tick) *Event {
	evt := New(BidAskData, source, nil)
	evt.Tick = &tick
	return evt
}

// NewOrder builds an order event. The event type derives from the payload
// status, defaulting to OrderUpdate for unrecognized statuses.
func NewOrder(source string, order Order) *Event {
	eType, ok := orderStatusTypes[order.Status]
	if !ok {
		eType = OrderUpdate
	}
	evt := New(eType, source, nil)
	evt.Order = &order
	return evt
}

// NewPosition builds a position event. The type is always PositionUpdate.
func NewPosition(source string, position Position) *Event {
	evt := New(PositionUpdate, source, nil)
	evt.Position = &position
	return evt
}

// NewError builds an error event carrying err.
func NewError(source string, err error) *Event {
	evt := New(Error, source, nil)
	evt.Err = err
	return evt
}
