package pfcf

// The broker ships its client as a COM library whose events are attached
// and detached by handler reference. Native models that surface so the
// adapter can be wired to the real binding or to a fake in tests.

/* Native event names */
const (
	EvLoginStatus   = "OnLoginStatus"
	EvTickMatch     = "OnTickDataTrade"
	EvTickBidAsk    = "OnTickDataBidOffer"
	EvOrderReply    = "OnOrderReply"
	EvOrderMatch    = "OnOrderMatch"
	EvPositionData  = "OnPositionData"
	EvPositionError = "OnPositionError"
	EvSystemError   = "OnSystemError"
)

// Handler signatures per event. Payload fields arrive as the positional
// strings the COM layer delivers, untyped and possibly blank.
type (
	LoginStatusHandler   func(account string, statusCode int, message string)
	TickHandler          func(symbol, matchTime, price, qty, bid, ask, bidQty, askQty string)
	OrderReplyHandler    func(orderID, account, symbol, side, qty, price, statusCode, note string)
	OrderMatchHandler    func(orderID, account, symbol, side, qty, price string)
	PositionDataHandler  func(rec NativePosition)
	PositionErrorHandler func(code, message string)
	SystemErrorHandler   func(code, message string)
)

// NativeOrder is the order shape the native client accepts.
type NativeOrder struct {
	Account     string
	Symbol      string
	Side        string
	Quantity    int
	Price       float64
	OrderType   string
	TimeInForce string
}

// NativePosition is one streamed record of a position query reply.
// Count declares how many records the whole reply carries and is the
// completion criterion of the blocking bridge.
type NativePosition struct {
	Count int

	InvestorAccount string
	ProductID       string

	YesterdayLong  string
	YesterdayShort string
	TodayLong      string
	TodayShort     string
	CurrentLong    string
	CurrentShort   string

	ReferencePrice string
	AvgCostLong    string
	AvgCostShort   string
	RealizedPL     string
	UnrealizedPL   string

	Currency string
}

// Native is the opaque broker client handed to the adapter. Requests are
// fire-and-forget where the broker only answers through events; Detach must
// receive the exact handler reference that was attached.
type Native interface {
	Login(account, password, environment string) error
	Logout() error

	SendOrder(ord NativeOrder) (orderID string, err error)
	CancelOrder(orderID, account string) error

	SubscribeQuote(symbols ...string) error
	UnsubscribeQuote(symbols ...string) error

	QueryPositions(account, productID string) error
	QueryMargin(account string) (map[string]float64, error)

	Attach(event string, handler interface{}) error
	Detach(event string, handler interface{}) error
}
