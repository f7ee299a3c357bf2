package simulator

import (
	"TaiGate/internal/events"
	"TaiGate/internal/models"
)

// applyFill folds one fill into the account's position book. Average cost is
// quantity-weighted; a fill that nets the position to zero removes it; a fill
// that crosses through zero opens the opposite side at the fill price.
func (s *Simulator) applyFill(account, symbol string, side models.Side, qty int, price float64) {
	s.mu.Lock()

	book, ok := s.positions[account]
	if !ok {
		book = make(map[string]*models.Position)
		s.positions[account] = book
	}

	signed := qty
	if side == models.SideSell {
		signed = -qty
	}

	pos, ok := book[symbol]
	if !ok {
		pos = &models.Position{
			Account:      account,
			Symbol:       symbol,
			Side:         side,
			Quantity:     qty,
			AveragePrice: price,
		}
		book[symbol] = pos
		s.mu.Unlock()
		s.emitPosition(pos)
		return
	}

	oldNet := pos.Quantity
	if pos.Side == models.SideSell {
		oldNet = -oldNet
	}
	newNet := oldNet + signed

	switch {
	case (oldNet > 0) == (signed > 0):
		// same direction, blend the average cost by quantity
		total := pos.Quantity + qty
		pos.AveragePrice = (pos.AveragePrice*float64(pos.Quantity) + price*float64(qty)) / float64(total)
		pos.Quantity = total

	case newNet == 0:
		pos.RealizedPL += closedPL(pos.AveragePrice, price, pos.Quantity, oldNet > 0)
		delete(book, symbol)
		closed := *pos
		closed.Quantity = 0
		s.mu.Unlock()
		s.emitPosition(&closed)
		return

	case (oldNet > 0) == (newNet > 0):
		// partial reduce
		pos.RealizedPL += closedPL(pos.AveragePrice, price, qty, oldNet > 0)
		pos.Quantity -= qty

	default:
		// crossed through zero, what remains is a fresh position
		realized := closedPL(pos.AveragePrice, price, pos.Quantity, oldNet > 0)
		pos.RealizedPL += realized
		pos.Side = side
		pos.Quantity = abs(newNet)
		pos.AveragePrice = price
	}

	updated := *pos
	s.mu.Unlock()
	s.emitPosition(&updated)
}

func closedPL(avg, price float64, qty int, long bool) float64 {
	if long {
		return (price - avg) * float64(qty)
	}
	return (avg - price) * float64(qty)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// unrealized marks the position against the freshest synthetic tick.
// Caller holds s.mu.
func (s *Simulator) unrealized(pos *models.Position) float64 {
	v, ok := s.lastTicks.Get(pos.Symbol)
	if !ok {
		return 0
	}
	mark := v.(events.Tick).Price

	if pos.Side == models.SideBuy {
		return (mark - pos.AveragePrice) * float64(pos.Quantity)
	}
	return (pos.AveragePrice - mark) * float64(pos.Quantity)
}

func (s *Simulator) emitPosition(pos *models.Position) {
	s.em.Emit(events.NewPosition(s.Name(), events.Position{
		Account:      pos.Account,
		Symbol:       pos.Symbol,
		Quantity:     pos.Quantity,
		Side:         string(pos.Side),
		AveragePrice: pos.AveragePrice,
		UnrealizedPL: pos.UnrealizedPL,
		RealizedPL:   pos.RealizedPL,
	}))
}
