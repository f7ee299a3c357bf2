package pfcf

import (
	"fmt"
	"sync"

	"TaiGate/internal/events"
	"TaiGate/internal/exchanges"
	"TaiGate/internal/models"
	"TaiGate/pkg/errors"
	"TaiGate/pkg/logger"
	"TaiGate/pkg/tools"
	"TaiGate/pkg/tools/numbers"
)

// orderStatusNames maps the broker's reply status code to the
// broker-neutral status string the event model derives its type from.
var orderStatusNames = map[string]string{
	"00": "accepted",
	"10": "rejected",
	"20": "working",
	"40": "cancelled",
	"50": "filled",
}

func orderStatusName(code string) string {
	if name, ok := orderStatusNames[code]; ok {
		return name
	}
	return "unknown"
}

type attachment struct {
	event   string
	handler interface{}
}

// translator subscribes to the native callback stream and republishes each
// payload as one standard event. Every handler body is panic-guarded: one
// corrupt payload is logged and dropped, the stream stays alive.
type translator struct {
	native Native
	em     *events.Manager
	log    logger.Logger
	source string

	mu       sync.Mutex
	attached []attachment
}

func newTranslator(native Native, em *events.Manager, lg logger.Logger) *translator {
	return &translator{
		native: native,
		em:     em,
		log:    lg.WithPrefix("module", "translator"),
		source: models.ExchangeTypePFCF.String(),
	}
}

// connect wires every native event to its handler. Calling it again while
// registrations are live is a no-op, a login retry must not stack a second
// handler set. A single failed registration degrades that one flow and is
// logged, it does not abort the rest.
func (t *translator) connect() {
	t.mu.Lock()
	if len(t.attached) > 0 {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	login := LoginStatusHandler(t.onLoginStatus)
	tick := TickHandler(t.onTick)
	bidAsk := TickHandler(t.onBidAsk)
	reply := OrderReplyHandler(t.onOrderReply)
	match := OrderMatchHandler(t.onOrderMatch)
	sysErr := SystemErrorHandler(t.onSystemError)

	t.attach(EvLoginStatus, login)
	t.attach(EvTickMatch, tick)
	t.attach(EvTickBidAsk, bidAsk)
	t.attach(EvOrderReply, reply)
	t.attach(EvOrderMatch, match)
	t.attach(EvSystemError, sysErr)
}

func (t *translator) attach(event string, handler interface{}) {
	if err := t.native.Attach(event, handler); err != nil {
		t.log.Errorf("attach %s failed: %v", event, err)
		return
	}

	t.mu.Lock()
	t.attached = append(t.attached, attachment{event: event, handler: handler})
	t.mu.Unlock()
}

// disconnect reverses every registration made by connect. Each detachment
// is independently guarded so one failure cannot strand the rest.
func (t *translator) disconnect() {
	t.mu.Lock()
	arena := t.attached
	t.attached = nil
	t.mu.Unlock()

	for _, a := range arena {
		func() {
			defer tools.Recover(t.log)
			if err := t.native.Detach(a.event, a.handler); err != nil {
				t.log.Errorf("detach %s failed: %v", a.event, err)
			}
		}()
	}
}

/*
	Native handlers
*/

func (t *translator) onLoginStatus(account string, statusCode int, message string) {
	defer tools.Recover(t.log)

	if statusCode == 0 {
		evt := events.New(events.LoginSuccess, t.source, map[string]interface{}{
			"account": account,
		})
		t.em.Emit(evt)
		return
	}

	if message == "" {
		message = fmt.Sprintf("login rejected with status %d", statusCode)
	}
	evt := events.New(events.LoginFailed, t.source, map[string]interface{}{
		"account":     account,
		"status_code": statusCode,
		"message":     message,
	})
	evt.Err = errors.WrapMessage(exchanges.ErrBrokerError, message)
	t.em.Emit(evt)
}

func (t *translator) onTick(symbol, matchTime, price, qty, bid, ask, bidQty, askQty string) {
	defer tools.Recover(t.log)

	tick, err := t.parseTick(symbol, price, qty, bid, ask, bidQty, askQty)
	if err != nil {
		t.log.Errorf("drop malformed tick for %s: %v", symbol, err)
		return
	}

	evt := events.NewTick(t.source, *tick)
	evt.Data["match_time"] = matchTime
	t.em.Emit(evt)
}

func (t *translator) onBidAsk(symbol, matchTime, price, qty, bid, ask, bidQty, askQty string) {
	defer tools.Recover(t.log)

	tick, err := t.parseTick(symbol, price, qty, bid, ask, bidQty, askQty)
	if err != nil {
		t.log.Errorf("drop malformed quote for %s: %v", symbol, err)
		return
	}

	evt := events.NewBidAsk(t.source, *tick)
	evt.Data["match_time"] = matchTime
	t.em.Emit(evt)
}

// parseTick converts the positional payload, blank fields reading as zero.
func (t *translator) parseTick(symbol, price, qty, bid, ask, bidQty, askQty string) (*events.Tick, error) {
	if symbol == "" {
		return nil, errors.New("tick without symbol")
	}

	p, err := numbers.ParseFloat(price)
	if err != nil {
		return nil, err
	}
	v, err := numbers.ParseInt(qty)
	if err != nil {
		return nil, err
	}
	b, err := numbers.ParseFloat(bid)
	if err != nil {
		return nil, err
	}
	a, err := numbers.ParseFloat(ask)
	if err != nil {
		return nil, err
	}
	bv, err := numbers.ParseInt(bidQty)
	if err != nil {
		return nil, err
	}
	av, err := numbers.ParseInt(askQty)
	if err != nil {
		return nil, err
	}

	return &events.Tick{
		Symbol:    symbol,
		Price:     p,
		Volume:    v,
		Bid:       b,
		Ask:       a,
		BidVolume: bv,
		AskVolume: av,
	}, nil
}

func (t *translator) onOrderReply(orderID, account, symbol, side, qty, price, statusCode, note string) {
	defer tools.Recover(t.log)

	order := events.Order{
		OrderID:  orderID,
		Account:  account,
		Symbol:   symbol,
		Side:     side,
		Quantity: numbers.IntOrZero(qty),
		Price:    numbers.FloatOrZero(price),
		Status:   orderStatusName(statusCode),
	}

	evt := events.NewOrder(t.source, order)
	evt.Data["status_code"] = statusCode
	if note != "" {
		evt.Data["note"] = note
	}
	t.em.Emit(evt)
}

func (t *translator) onOrderMatch(orderID, account, symbol, side, qty, price string) {
	defer tools.Recover(t.log)

	order := events.Order{
		OrderID:  orderID,
		Account:  account,
		Symbol:   symbol,
		Side:     side,
		Quantity: numbers.IntOrZero(qty),
		Price:    numbers.FloatOrZero(price),
		Status:   "filled",
	}

	t.em.Emit(events.NewOrder(t.source, order))
}

func (t *translator) onSystemError(code, message string) {
	defer tools.Recover(t.log)

	err := errors.WrapMessage(exchanges.ErrBrokerError, fmt.Sprintf("code=%s %s", code, message))
	t.log.Error(err)
	t.em.Emit(events.NewError(t.source, err))
}
