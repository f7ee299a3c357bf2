package factory

import (
	"strings"

	"TaiGate/internal/config"
	"TaiGate/internal/exchanges"
	"TaiGate/internal/exchanges/pfcf"
	"TaiGate/internal/exchanges/simulator"
	"TaiGate/internal/models"
	"TaiGate/pkg/errors"
	"TaiGate/pkg/logger"
)

// Dependencies carries the external collaborators an adapter cannot build
// for itself. The live PFCF adapter needs the broker's native client; the
// simulator needs nothing.
type Dependencies struct {
	Native pfcf.Native
}

const defaultProvider = models.ExchangeTypeSimulator

// New selects and constructs an adapter. Provider resolution order: the
// explicit argument, then the configured value, then the simulator.
// Unknown names fail loudly instead of silently falling back.
func New(provider string, deps *Dependencies, cfg config.Configurations, lg logger.Logger) (exchanges.Exchange, error) {
	if provider == "" {
		provider = cfg.Exchanges.Provider
	}
	if provider == "" {
		provider = defaultProvider.String()
	}

	switch models.ExchangeType(strings.ToUpper(provider)) {
	case models.ExchangeTypePFCF:
		if deps == nil || deps.Native == nil {
			return nil, errors.WrapMessage(exchanges.ErrMissingDependency, "PFCF needs a native client handle")
		}
		return pfcf.New(deps.Native, cfg, lg), nil

	case models.ExchangeTypeSimulator:
		return simulator.New(cfg, lg), nil

	case models.ExchangeTypeYuanta, models.ExchangeTypeCapital:
		return nil, errors.WrapMessage(exchanges.ErrNotImplemented, strings.ToUpper(provider))

	default:
		return nil, errors.WrapMessage(exchanges.ErrUnsupportedProvider, provider)
	}
}
