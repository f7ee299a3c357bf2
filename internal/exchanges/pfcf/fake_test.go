package pfcf

import (
	"reflect"
	"sync"

	"TaiGate/pkg/errors"
)

// fakeNative stands in for the COM client: it records attachments and lets
// a test fire native events on demand, optionally from another goroutine.
type fakeNative struct {
	mu       sync.Mutex
	handlers map[string][]interface{}

	attachErr map[string]error
	detachErr map[string]error

	loginErr  error
	onLogin   func(account, password, environment string)
	onQuery   func(account, productID string)
	sendID    string
	sendErr   error
	cancelled []string
	quotes    []string
	margin    map[string]float64
	marginErr error
}

func newFakeNative() *fakeNative {
	return &fakeNative{
		handlers:  make(map[string][]interface{}),
		attachErr: make(map[string]error),
		detachErr: make(map[string]error),
		margin:    map[string]float64{"equity": 100000},
	}
}

func (f *fakeNative) Attach(event string, handler interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.attachErr[event]; err != nil {
		return err
	}
	f.handlers[event] = append(f.handlers[event], handler)
	return nil
}

func (f *fakeNative) Detach(event string, handler interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.detachErr[event]; err != nil {
		return err
	}

	want := reflect.ValueOf(handler).Pointer()
	hs := f.handlers[event]
	for i, h := range hs {
		if reflect.ValueOf(h).Pointer() == want {
			f.handlers[event] = append(hs[:i], hs[i+1:]...)
			return nil
		}
	}
	return errors.New("handler not attached")
}

func (f *fakeNative) handlerCount(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers[event])
}

func (f *fakeNative) Login(account, password, environment string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	if f.onLogin != nil {
		go f.onLogin(account, password, environment)
	}
	return nil
}

func (f *fakeNative) Logout() error { return nil }

func (f *fakeNative) SendOrder(ord NativeOrder) (string, error) {
	return f.sendID, f.sendErr
}

func (f *fakeNative) CancelOrder(orderID, account string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, orderID)
	return nil
}

func (f *fakeNative) SubscribeQuote(symbols ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes = append(f.quotes, symbols...)
	return nil
}

func (f *fakeNative) UnsubscribeQuote(symbols ...string) error { return nil }

func (f *fakeNative) QueryPositions(account, productID string) error {
	if f.onQuery != nil {
		go f.onQuery(account, productID)
	}
	return nil
}

func (f *fakeNative) QueryMargin(account string) (map[string]float64, error) {
	return f.margin, f.marginErr
}

/*
	Event firing, the way the COM thread would
*/

func (f *fakeNative) snapshot(event string) []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]interface{}(nil), f.handlers[event]...)
}

func (f *fakeNative) fireLogin(account string, code int, message string) {
	for _, h := range f.snapshot(EvLoginStatus) {
		h.(LoginStatusHandler)(account, code, message)
	}
}

func (f *fakeNative) fireTick(args ...string) {
	for _, h := range f.snapshot(EvTickMatch) {
		h.(TickHandler)(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7])
	}
}

func (f *fakeNative) fireOrderReply(orderID, account, symbol, side, qty, price, statusCode, note string) {
	for _, h := range f.snapshot(EvOrderReply) {
		h.(OrderReplyHandler)(orderID, account, symbol, side, qty, price, statusCode, note)
	}
}

func (f *fakeNative) fireOrderMatch(orderID, account, symbol, side, qty, price string) {
	for _, h := range f.snapshot(EvOrderMatch) {
		h.(OrderMatchHandler)(orderID, account, symbol, side, qty, price)
	}
}

func (f *fakeNative) firePosition(rec NativePosition) {
	for _, h := range f.snapshot(EvPositionData) {
		h.(PositionDataHandler)(rec)
	}
}

func (f *fakeNative) firePositionError(code, message string) {
	for _, h := range f.snapshot(EvPositionError) {
		h.(PositionErrorHandler)(code, message)
	}
}

func (f *fakeNative) fireSystemError(code, message string) {
	for _, h := range f.snapshot(EvSystemError) {
		h.(SystemErrorHandler)(code, message)
	}
}
