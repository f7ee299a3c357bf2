package storage

import (
	"time"

	"TaiGate/internal/events"
	"TaiGate/pkg/errors"
	"TaiGate/pkg/logger"
	"TaiGate/pkg/tools"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
)

// FillRecord is one executed order as the journal keeps it.
type FillRecord struct {
	ID       int    `storm:"id,increment"`
	OrderID  string `storm:"index"`
	Account  string `storm:"index"`
	Symbol   string
	Side     string
	Quantity int
	Price    float64
	Source   string
	Time     time.Time
}

// Journal appends every ORDER_FILLED event to an embedded database.
// Best effort observability, not recovery state: a failed write is logged
// and dropped. It registers as a broad handler, keyed by instance, so
// several journals can share one manager.
type Journal struct {
	db  *storm.DB
	em  *events.Manager
	log logger.Logger
}

var _ events.Handler = (*Journal)(nil)

func NewJournal(path string, em *events.Manager, lg logger.Logger) (*Journal, error) {
	db, err := storm.Open(path)
	if err != nil {
		return nil, errors.WrapStack(err)
	}

	j := &Journal{
		db:  db,
		em:  em,
		log: lg.WithPrefix("module", "journal"),
	}
	em.SubscribeAll(j)

	return j, nil
}

func (j *Journal) OnEvent(evt *events.Event) {}

func (j *Journal) OnTick(evt *events.Event, tick *events.Tick) {}

func (j *Journal) OnPosition(evt *events.Event, position *events.Position) {}

func (j *Journal) OnError(evt *events.Event, err error) {}

func (j *Journal) OnOrder(evt *events.Event, order *events.Order) {
	defer tools.Recover(j.log)

	if evt.Type != events.OrderFilled {
		return
	}

	rec := &FillRecord{
		OrderID:  order.OrderID,
		Account:  order.Account,
		Symbol:   order.Symbol,
		Side:     order.Side,
		Quantity: order.Quantity,
		Price:    order.Price,
		Source:   evt.Source,
		Time:     evt.Time,
	}

	if err := j.db.Save(rec); err != nil {
		j.log.Error("journal write failed", err)
	}
}

// Fills returns the journaled fills for one account in write order.
func (j *Journal) Fills(account string) ([]FillRecord, error) {
	var rs []FillRecord

	err := j.db.Select(q.Eq("Account", account)).OrderBy("ID").Find(&rs)
	if err == storm.ErrNotFound {
		return []FillRecord{}, nil
	}
	if err != nil {
		return nil, errors.WrapStack(err)
	}
	return rs, nil
}

func (j *Journal) Close() error {
	j.em.UnsubscribeAll(j)
	return j.db.Close()
}
