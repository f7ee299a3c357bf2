package exchanges

import (
	"TaiGate/internal/events"
	"TaiGate/internal/models"
)

// Exchange is the capability contract every broker adapter implements.
// Business outcomes (auth failure, order rejection) come back inside the
// result values; error returns are reserved for transport and usage faults.
type Exchange interface {
	/* Session */
	Connect(creds models.LoginCredentials) *models.LoginResult
	Disconnect() bool
	IsConnected() bool

	/* Trading */
	SendOrder(req models.OrderRequest) *models.OrderResult
	CancelOrder(orderID string, account string) error

	/* Account */
	GetPositions(account string) ([]*models.Position, error)
	GetAccountBalance(account string) (map[string]float64, error)

	/* Market data */
	SubscribeMarketData(symbols []string, cb events.Callback) error
	UnsubscribeMarketData(symbols []string) error

	/* Identity */
	Name() string
	Events() *events.Manager
}
