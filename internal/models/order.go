package models

type OrderType string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeStop   OrderType = "STOP"
)

type TimeInForce string

const (
	TimeInForceROD TimeInForce = "ROD"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

// OrderRequest is the broker-neutral order submitted through an adapter.
// Fields stay primitive so every adapter can translate them to its native
// representation without leaking native types back across the boundary.
type OrderRequest struct {
	Account     string
	Symbol      string
	Side        Side
	Quantity    int
	Price       float64
	OrderType   OrderType
	TimeInForce TimeInForce
}

type OrderResult struct {
	Success   bool
	OrderID   string
	ErrorCode string
	Message   string
}
