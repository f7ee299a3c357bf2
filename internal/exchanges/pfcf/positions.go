package pfcf

import (
	"fmt"
	"sync"
	"time"

	"TaiGate/internal/exchanges"
	"TaiGate/internal/models"
	"TaiGate/pkg/errors"
	"TaiGate/pkg/logger"
	"TaiGate/pkg/tools"
	"TaiGate/pkg/tools/numbers"
)

const DefaultPositionTimeout = 5 * time.Second

// PositionRepository turns the broker's streaming callback-pair position
// query into one synchronous call with an upper-bound wait. Each call owns
// its private state and handlers, so concurrent calls do not interfere.
type PositionRepository struct {
	native  Native
	timeout time.Duration
	log     logger.Logger
}

func NewPositionRepository(native Native, timeout time.Duration, lg logger.Logger) *PositionRepository {
	if timeout <= 0 {
		timeout = DefaultPositionTimeout
	}
	return &PositionRepository{
		native:  native,
		timeout: timeout,
		log:     lg.WithPrefix("module", "positions"),
	}
}

// positionCall is the accumulator one GetPositions call shares with its two
// native callbacks. All mutation happens under mu; a callback landing after
// the caller already gave up only touches this soon-abandoned struct.
type positionCall struct {
	mu   sync.Mutex
	once sync.Once
	done chan struct{}

	results  []*models.PositionRecord
	expected int
	counted  bool
	failed   bool
	message  string
}

func (c *positionCall) signal() {
	c.once.Do(func() { close(c.done) })
}

// GetPositions blocks until the broker streams the declared record count,
// reports an error, or the timeout elapses. An account with zero positions
// returns an empty list, not an error.
func (r *PositionRepository) GetPositions(orderAccount, productID string) ([]*models.PositionRecord, error) {
	call := &positionCall{done: make(chan struct{})}

	onData := PositionDataHandler(func(rec NativePosition) {
		call.mu.Lock()
		defer call.mu.Unlock()

		if !call.counted {
			call.counted = true
			call.expected = rec.Count
			if call.expected == 0 {
				call.signal()
				return
			}
		}

		// tolerate a partially corrupt record, keep waiting for the rest
		if rec.InvestorAccount == "" || rec.ProductID == "" {
			return
		}

		dto, err := recordFromNative(rec)
		if err != nil {
			call.failed = true
			call.message = err.Error()
			call.signal()
			return
		}

		call.results = append(call.results, dto)
		if len(call.results) >= call.expected {
			call.signal()
		}
	})

	onError := PositionErrorHandler(func(code, message string) {
		call.mu.Lock()
		defer call.mu.Unlock()

		call.failed = true
		call.message = fmt.Sprintf("code=%s %s", code, message)
		call.signal()
	})

	// both callbacks must be live before the request goes out, and both must
	// be gone on every exit path: they close over this call's state
	if err := r.native.Attach(EvPositionData, onData); err != nil {
		return nil, errors.WrapMessage(exchanges.ErrRequestError, err)
	}
	defer r.detach(EvPositionData, onData)

	if err := r.native.Attach(EvPositionError, onError); err != nil {
		return nil, errors.WrapMessage(exchanges.ErrRequestError, err)
	}
	defer r.detach(EvPositionError, onError)

	if err := r.native.QueryPositions(orderAccount, productID); err != nil {
		return nil, errors.WrapMessage(exchanges.ErrRequestError, err)
	}

	select {
	case <-call.done:
	case <-time.After(r.timeout):
		return nil, errors.WrapMessage(exchanges.ErrResultTimeOut,
			fmt.Sprintf("position query for %s gave no reply within %s", orderAccount, r.timeout))
	}

	call.mu.Lock()
	defer call.mu.Unlock()

	if call.failed {
		return nil, errors.WrapMessage(exchanges.ErrBrokerError, call.message)
	}

	return call.results, nil
}

func (r *PositionRepository) detach(event string, handler interface{}) {
	defer tools.Recover(r.log)

	if err := r.native.Detach(event, handler); err != nil {
		r.log.Errorf("detach %s failed: %v", event, err)
	}
}

// recordFromNative parses the record's string fields permissively: blank
// reads as zero, anything else must parse cleanly.
func recordFromNative(rec NativePosition) (*models.PositionRecord, error) {
	dto, err := models.NewPositionRecord(rec.InvestorAccount, rec.ProductID)
	if err != nil {
		return nil, err
	}

	if dto.YesterdayLong, err = numbers.ParseInt(rec.YesterdayLong); err != nil {
		return nil, err
	}
	if dto.YesterdayShort, err = numbers.ParseInt(rec.YesterdayShort); err != nil {
		return nil, err
	}
	if dto.TodayLong, err = numbers.ParseInt(rec.TodayLong); err != nil {
		return nil, err
	}
	if dto.TodayShort, err = numbers.ParseInt(rec.TodayShort); err != nil {
		return nil, err
	}
	if dto.CurrentLong, err = numbers.ParseInt(rec.CurrentLong); err != nil {
		return nil, err
	}
	if dto.CurrentShort, err = numbers.ParseInt(rec.CurrentShort); err != nil {
		return nil, err
	}
	if dto.ReferencePrice, err = numbers.ParseFloat(rec.ReferencePrice); err != nil {
		return nil, err
	}
	if dto.AvgCostLong, err = numbers.ParseFloat(rec.AvgCostLong); err != nil {
		return nil, err
	}
	if dto.AvgCostShort, err = numbers.ParseFloat(rec.AvgCostShort); err != nil {
		return nil, err
	}
	if dto.RealizedPL, err = numbers.ParseFloat(rec.RealizedPL); err != nil {
		return nil, err
	}
	if dto.UnrealizedPL, err = numbers.ParseFloat(rec.UnrealizedPL); err != nil {
		return nil, err
	}

	dto.Currency = rec.Currency

	return dto, nil
}
