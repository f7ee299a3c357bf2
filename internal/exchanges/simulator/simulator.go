package simulator

import (
	"math/rand"
	"sync"
	"time"

	"TaiGate/internal/config"
	"TaiGate/internal/events"
	"TaiGate/internal/exchanges"
	"TaiGate/internal/models"
	"TaiGate/pkg/logger"
	"TaiGate/pkg/tools"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	startingBalance = 1000000.0
	tickInterval    = 100 * time.Millisecond
	tickTTL         = 5 * time.Minute
	basePrice       = 17000.0
)

// Simulator is a fully in-memory adapter: every order fills instantly at
// its request price, stop orders rest until cancelled, market data is a
// random walk. It is a test double, not a market model.
type Simulator struct {
	cfg config.Configurations
	log logger.Logger
	em  *events.Manager

	mu        sync.Mutex
	connected bool
	account   string
	resting   map[string]models.OrderRequest
	positions map[string]map[string]*models.Position
	balances  map[string]map[string]float64
	symbols   map[string]struct{}
	stop      chan struct{}

	lastTicks *gocache.Cache
	rnd       *rand.Rand
}

var _ exchanges.Exchange = (*Simulator)(nil)

func New(cfg config.Configurations, lg logger.Logger) *Simulator {
	lg = lg.WithPrefix("exchange", models.ExchangeTypeSimulator.String())

	return &Simulator{
		cfg:       cfg,
		log:       lg,
		em:        events.NewManager(lg),
		resting:   make(map[string]models.OrderRequest),
		positions: make(map[string]map[string]*models.Position),
		balances:  make(map[string]map[string]float64),
		symbols:   make(map[string]struct{}),
		lastTicks: gocache.New(tickTTL, tickTTL),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Simulator) Name() string {
	return models.ExchangeTypeSimulator.String()
}

func (s *Simulator) Events() *events.Manager {
	return s.em
}

func (s *Simulator) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Simulator) Connect(creds models.LoginCredentials) *models.LoginResult {
	if creds.Account == "" || creds.Password == "" {
		return &models.LoginResult{
			Success:   false,
			Account:   creds.Account,
			ErrorCode: "EMPTY_CREDENTIALS",
			Message:   "account and password are required",
		}
	}

	s.mu.Lock()
	s.connected = true
	s.account = creds.Account
	if _, ok := s.balances[creds.Account]; !ok {
		s.balances[creds.Account] = map[string]float64{"TWD": startingBalance}
	}
	s.mu.Unlock()

	s.em.Emit(events.New(events.Connected, s.Name(), nil))
	s.em.Emit(events.New(events.LoginSuccess, s.Name(), map[string]interface{}{
		"account": creds.Account,
	}))

	return &models.LoginResult{Success: true, Account: creds.Account}
}

func (s *Simulator) Disconnect() bool {
	s.mu.Lock()
	wasConnected := s.connected
	s.connected = false
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.symbols = make(map[string]struct{})
	s.mu.Unlock()

	if wasConnected {
		s.em.Emit(events.New(events.Disconnected, s.Name(), nil))
	}
	s.em.Clear()

	return true
}

func (s *Simulator) SendOrder(req models.OrderRequest) *models.OrderResult {
	if !s.IsConnected() {
		return &models.OrderResult{
			Success:   false,
			ErrorCode: "NOT_CONNECTED",
			Message:   exchanges.ErrNoConnect.Error(),
		}
	}
	if req.Quantity <= 0 {
		res := &models.OrderResult{Success: false, ErrorCode: "BAD_QUANTITY", Message: "quantity must be positive"}
		s.emitOrder(uuid.New().String(), req, "rejected", req.Price)
		return res
	}

	orderID := uuid.New().String()

	s.emitOrder(orderID, req, "accepted", req.Price)

	if req.OrderType == models.OrderTypeStop {
		s.mu.Lock()
		s.resting[orderID] = req
		s.mu.Unlock()
		return &models.OrderResult{Success: true, OrderID: orderID}
	}

	fillPrice := req.Price
	if req.OrderType == models.OrderTypeMarket {
		fillPrice = s.lastPrice(req.Symbol)
	}

	s.applyFill(req.Account, req.Symbol, req.Side, req.Quantity, fillPrice)
	s.emitOrder(orderID, req, "filled", fillPrice)

	return &models.OrderResult{Success: true, OrderID: orderID}
}

func (s *Simulator) CancelOrder(orderID string, account string) error {
	if !s.IsConnected() {
		return exchanges.ErrNoConnect
	}

	s.mu.Lock()
	req, ok := s.resting[orderID]
	if ok {
		delete(s.resting, orderID)
	}
	s.mu.Unlock()

	if !ok {
		return exchanges.ErrOrderNotFound
	}

	s.emitOrder(orderID, req, "cancelled", req.Price)
	return nil
}

func (s *Simulator) GetPositions(account string) ([]*models.Position, error) {
	if !s.IsConnected() {
		return nil, exchanges.ErrNoConnect
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rs := make([]*models.Position, 0, len(s.positions[account]))
	for _, pos := range s.positions[account] {
		p := *pos
		p.UnrealizedPL = s.unrealized(&p)
		rs = append(rs, &p)
	}
	return rs, nil
}

func (s *Simulator) GetAccountBalance(account string) (map[string]float64, error) {
	if !s.IsConnected() {
		return nil, exchanges.ErrNoConnect
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, ok := s.balances[account]
	if !ok {
		return map[string]float64{}, nil
	}

	rs := make(map[string]float64, len(balance))
	for k, v := range balance {
		rs[k] = v
	}
	return rs, nil
}

func (s *Simulator) SubscribeMarketData(symbols []string, cb events.Callback) error {
	if !s.IsConnected() {
		return exchanges.ErrNoConnect
	}

	if cb != nil {
		s.em.Subscribe(events.TickData, cb)
	}

	s.mu.Lock()
	for _, sym := range symbols {
		s.symbols[sym] = struct{}{}
	}
	if s.stop == nil {
		s.stop = make(chan struct{})
		go s.feed(s.stop)
	}
	s.mu.Unlock()

	return nil
}

func (s *Simulator) UnsubscribeMarketData(symbols []string) error {
	if !s.IsConnected() {
		return exchanges.ErrNoConnect
	}

	s.mu.Lock()
	for _, sym := range symbols {
		delete(s.symbols, sym)
	}
	s.mu.Unlock()

	return nil
}

// feed is the synthetic market: a random walk per subscribed symbol.
func (s *Simulator) feed(stop <-chan struct{}) {
	defer tools.Recover(s.log)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			symbols := make([]string, 0, len(s.symbols))
			for sym := range s.symbols {
				symbols = append(symbols, sym)
			}
			s.mu.Unlock()

			for _, sym := range symbols {
				s.emitTick(sym)
			}
		}
	}
}

func (s *Simulator) emitTick(symbol string) {
	price := s.lastPrice(symbol)
	price += float64(s.rnd.Intn(11)-5)

	tick := events.Tick{
		Symbol:    symbol,
		Price:     price,
		Volume:    1 + s.rnd.Intn(10),
		Bid:       price - 1,
		Ask:       price + 1,
		BidVolume: 1 + s.rnd.Intn(20),
		AskVolume: 1 + s.rnd.Intn(20),
	}

	s.lastTicks.Set(symbol, tick, gocache.DefaultExpiration)
	s.em.Emit(events.NewTick(s.Name(), tick))
}

func (s *Simulator) lastPrice(symbol string) float64 {
	if v, ok := s.lastTicks.Get(symbol); ok {
		return v.(events.Tick).Price
	}
	return basePrice
}

func (s *Simulator) emitOrder(orderID string, req models.OrderRequest, status string, price float64) {
	s.em.Emit(events.NewOrder(s.Name(), events.Order{
		OrderID:  orderID,
		Account:  req.Account,
		Symbol:   req.Symbol,
		Side:     string(req.Side),
		Quantity: req.Quantity,
		Price:    price,
		Status:   status,
	}))
}
