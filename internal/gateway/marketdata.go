package gateway

import (
	"sync"
	"time"

	"TaiGate/internal/events"
	"TaiGate/pkg/errors"
	"TaiGate/pkg/logger"
	"TaiGate/pkg/tools"

	jsoniter "github.com/json-iterator/go"
	"github.com/pebbe/zmq4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TickFrame is the wire shape one tick is published as. The frame envelope
// is two parts: the symbol as topic, then the JSON payload.
type TickFrame struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Volume    int     `json:"volume"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	BidVolume int     `json:"bid_volume"`
	AskVolume int     `json:"ask_volume"`
	Source    string  `json:"source"`
	Time      string  `json:"time"`
}

// Publisher forwards already-translated tick events onto a ZMQ PUB socket.
// It is a plain consumer of the event manager, nothing flows back. It
// registers as a broad handler, keyed by instance, so several publishers
// can share one manager.
type Publisher struct {
	mu  sync.Mutex
	soc *zmq4.Socket
	em  *events.Manager
	log logger.Logger
}

var _ events.Handler = (*Publisher)(nil)

func NewPublisher(bind string, em *events.Manager, lg logger.Logger) (*Publisher, error) {
	soc, err := zmq4.NewSocket(zmq4.PUB)
	if err != nil {
		return nil, errors.WrapStack(err)
	}
	if err = soc.Bind(bind); err != nil {
		soc.Close()
		return nil, errors.WrapStack(err)
	}

	p := &Publisher{
		soc: soc,
		em:  em,
		log: lg.WithPrefix("module", "marketdata"),
	}
	em.SubscribeAll(p)

	return p, nil
}

func (p *Publisher) OnEvent(evt *events.Event) {}

func (p *Publisher) OnOrder(evt *events.Event, order *events.Order) {}

func (p *Publisher) OnPosition(evt *events.Event, position *events.Position) {}

func (p *Publisher) OnError(evt *events.Event, err error) {}

func (p *Publisher) OnTick(evt *events.Event, tick *events.Tick) {
	defer tools.Recover(p.log)

	payload, err := json.Marshal(frameFromEvent(evt))
	if err != nil {
		p.log.Error("marshal tick", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.soc == nil {
		return
	}
	if _, err = p.soc.SendMessageDontwait(tick.Symbol, payload); err != nil {
		p.log.Error("publish tick", err)
	}
}

func frameFromEvent(evt *events.Event) TickFrame {
	return TickFrame{
		Symbol:    evt.Tick.Symbol,
		Price:     evt.Tick.Price,
		Volume:    evt.Tick.Volume,
		Bid:       evt.Tick.Bid,
		Ask:       evt.Tick.Ask,
		BidVolume: evt.Tick.BidVolume,
		AskVolume: evt.Tick.AskVolume,
		Source:    evt.Source,
		Time:      evt.Time.Format(time.RFC3339Nano),
	}
}

func (p *Publisher) Close() {
	p.em.UnsubscribeAll(p)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.soc != nil {
		if err := p.soc.Close(); err != nil {
			p.log.Error("close socket", err)
		}
		p.soc = nil
	}
}
