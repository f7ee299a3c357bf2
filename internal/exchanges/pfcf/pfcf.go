package pfcf

import (
	"fmt"
	"sync"
	"time"

	"TaiGate/internal/config"
	"TaiGate/internal/events"
	"TaiGate/internal/exchanges"
	"TaiGate/internal/models"
	"TaiGate/pkg/logger"
	"TaiGate/pkg/tools"
)

const loginTimeout = 10 * time.Second

// PFCF adapts the broker's COM client to the Exchange contract. It owns one
// event manager; the translation layer feeds it, consumers subscribe to it.
type PFCF struct {
	native     Native
	cfg        config.Configurations
	log        logger.Logger
	em         *events.Manager
	translator *translator
	positions  *PositionRepository

	mu        sync.Mutex
	connected bool
	account   string
}

var _ exchanges.Exchange = (*PFCF)(nil)

func New(native Native, cfg config.Configurations, lg logger.Logger) *PFCF {
	lg = lg.WithPrefix("exchange", models.ExchangeTypePFCF.String())
	em := events.NewManager(lg)

	return &PFCF{
		native:     native,
		cfg:        cfg,
		log:        lg,
		em:         em,
		translator: newTranslator(native, em, lg),
		positions:  NewPositionRepository(native, cfg.Exchanges.PFCF.PositionTimeout, lg),
	}
}

func (b *PFCF) Name() string {
	return models.ExchangeTypePFCF.String()
}

func (b *PFCF) Events() *events.Manager {
	return b.em
}

func (b *PFCF) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// Connect wires the translation layer, issues the native login and waits for
// the login status event. Expected auth failures and timeouts come back as a
// failed result, never as a fault.
func (b *PFCF) Connect(creds models.LoginCredentials) (result *models.LoginResult) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorf("connect panic: %v", r)
			result = &models.LoginResult{
				Success:   false,
				Account:   creds.Account,
				ErrorCode: "INTERNAL",
				Message:   fmt.Sprint(r),
			}
		}
	}()

	b.mu.Lock()
	if b.connected {
		account := b.account
		b.mu.Unlock()
		return &models.LoginResult{Success: true, Account: account}
	}
	b.mu.Unlock()

	b.translator.connect()

	loginDone := make(chan *models.LoginResult, 1)
	onLogin := func(evt *events.Event) {
		res := &models.LoginResult{Account: creds.Account}
		if evt.Type == events.LoginSuccess {
			res.Success = true
		} else {
			res.ErrorCode = fmt.Sprint(evt.Data["status_code"])
			res.Message = fmt.Sprint(evt.Data["message"])
		}
		select {
		case loginDone <- res:
		default:
		}
	}

	b.em.Subscribe(events.LoginSuccess, onLogin)
	b.em.Subscribe(events.LoginFailed, onLogin)
	defer b.em.Unsubscribe(events.LoginSuccess, onLogin)
	defer b.em.Unsubscribe(events.LoginFailed, onLogin)

	environment := b.cfg.Exchanges.PFCF.Environment
	if creds.Production {
		environment = "production"
	}

	if err := b.native.Login(creds.Account, creds.Password, environment); err != nil {
		b.log.Error("login request failed", err)
		return &models.LoginResult{
			Success:   false,
			Account:   creds.Account,
			ErrorCode: "LOGIN_REQUEST",
			Message:   err.Error(),
		}
	}

	select {
	case res := <-loginDone:
		if res.Success {
			b.mu.Lock()
			b.connected = true
			b.account = creds.Account
			b.mu.Unlock()
			b.em.Emit(events.New(events.Connected, b.Name(), nil))
		}
		return res
	case <-time.After(loginTimeout):
		return &models.LoginResult{
			Success:   false,
			Account:   creds.Account,
			ErrorCode: "TIMEOUT",
			Message:   fmt.Sprintf("no login reply within %s", loginTimeout),
		}
	}
}

// Disconnect detaches every native registration, clears subscriptions and
// logs the account out. Safe to call when never connected.
func (b *PFCF) Disconnect() bool {
	defer tools.Recover(b.log)

	b.mu.Lock()
	wasConnected := b.connected
	b.connected = false
	b.mu.Unlock()

	if wasConnected {
		b.em.Emit(events.New(events.Disconnected, b.Name(), nil))
	}

	b.translator.disconnect()
	b.em.Clear()

	if err := b.native.Logout(); err != nil {
		b.log.Error("logout failed", err)
		return false
	}
	return true
}

// SendOrder never lets a native fault escape: anything unexpected becomes a
// failed result with a generic code.
func (b *PFCF) SendOrder(req models.OrderRequest) (result *models.OrderResult) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorf("send order panic: %v", r)
			result = &models.OrderResult{Success: false, ErrorCode: "INTERNAL", Message: fmt.Sprint(r)}
		}
	}()

	if !b.IsConnected() {
		return &models.OrderResult{
			Success:   false,
			ErrorCode: "NOT_CONNECTED",
			Message:   exchanges.ErrNoConnect.Error(),
		}
	}

	orderID, err := b.native.SendOrder(NativeOrder{
		Account:     req.Account,
		Symbol:      req.Symbol,
		Side:        string(req.Side),
		Quantity:    req.Quantity,
		Price:       req.Price,
		OrderType:   string(req.OrderType),
		TimeInForce: string(req.TimeInForce),
	})
	if err != nil {
		return &models.OrderResult{Success: false, ErrorCode: "REQUEST_ERROR", Message: err.Error()}
	}

	return &models.OrderResult{Success: true, OrderID: orderID}
}

func (b *PFCF) CancelOrder(orderID string, account string) error {
	if !b.IsConnected() {
		return exchanges.ErrNoConnect
	}
	return b.native.CancelOrder(orderID, account)
}

// GetPositions answers through the blocking bridge and flattens each record
// into the broker-neutral position shape.
func (b *PFCF) GetPositions(account string) ([]*models.Position, error) {
	if !b.IsConnected() {
		return nil, exchanges.ErrNoConnect
	}

	records, err := b.positions.GetPositions(account, "")
	if err != nil {
		return nil, err
	}

	rs := make([]*models.Position, 0, len(records))
	for _, rec := range records {
		if !rec.HasPosition() {
			continue
		}
		rs = append(rs, positionFromRecord(rec))
	}
	return rs, nil
}

func positionFromRecord(rec *models.PositionRecord) *models.Position {
	net := rec.NetQuantity()

	pos := &models.Position{
		Account:      rec.InvestorAccount,
		Symbol:       rec.ProductID,
		UnrealizedPL: rec.UnrealizedPL,
		RealizedPL:   rec.RealizedPL,
	}
	if net >= 0 {
		pos.Side = models.SideBuy
		pos.Quantity = net
		pos.AveragePrice = rec.AvgCostLong
	} else {
		pos.Side = models.SideSell
		pos.Quantity = -net
		pos.AveragePrice = rec.AvgCostShort
	}
	return pos
}

func (b *PFCF) GetAccountBalance(account string) (map[string]float64, error) {
	if !b.IsConnected() {
		return nil, exchanges.ErrNoConnect
	}

	balance, err := b.native.QueryMargin(account)
	if err != nil {
		return nil, err
	}

	data := make(map[string]interface{}, len(balance)+1)
	data["account"] = account
	for k, v := range balance {
		data[k] = v
	}
	b.em.Emit(events.New(events.BalanceUpdate, b.Name(), data))

	return balance, nil
}

func (b *PFCF) SubscribeMarketData(symbols []string, cb events.Callback) error {
	if !b.IsConnected() {
		return exchanges.ErrNoConnect
	}
	if cb != nil {
		b.em.Subscribe(events.TickData, cb)
	}
	return b.native.SubscribeQuote(symbols...)
}

func (b *PFCF) UnsubscribeMarketData(symbols []string) error {
	if !b.IsConnected() {
		return exchanges.ErrNoConnect
	}
	return b.native.UnsubscribeQuote(symbols...)
}
