package models

type ExchangeType string

const (
	ExchangeTypePFCF      ExchangeType = "PFCF"
	ExchangeTypeYuanta    ExchangeType = "YUANTA"
	ExchangeTypeCapital   ExchangeType = "CAPITAL"
	ExchangeTypeSimulator ExchangeType = "SIMULATOR"
)

func (e ExchangeType) String() string {
	return string(e)
}

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type LoginCredentials struct {
	Account  string
	Password string
	// Production switches the broker environment, false means test rails
	Production bool
}

type LoginResult struct {
	Success   bool
	Account   string
	ErrorCode string
	Message   string
}
