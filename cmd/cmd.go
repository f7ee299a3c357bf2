package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"TaiGate/internal/config"
	"TaiGate/internal/events"
	"TaiGate/internal/exchanges/factory"
	"TaiGate/internal/gateway"
	"TaiGate/internal/models"
	"TaiGate/pkg/logger"
	"TaiGate/storage"
)

var (
	Ver       = ""
	BuildDate = ""
)

// Run wires the gateway: configuration, logger, adapter via the factory,
// market data publisher and fill journal, then blocks until SIGINT/SIGTERM.
func Run() {
	cfg := config.Load()

	level := logger.InfoLevel
	if cfg.IsDebug() {
		level = logger.DebugLevel
	}
	lg := logger.New(os.Stdout, level)

	ex, err := factory.New(cfg.Exchanges.Provider, nil, cfg, lg)
	if err != nil {
		lg.Error("create exchange adapter", err)
		os.Exit(1)
	}

	res := ex.Connect(models.LoginCredentials{
		Account:  cfg.Exchanges.PFCF.Account,
		Password: cfg.Exchanges.PFCF.Password,
	})
	if !res.Success {
		lg.Errorf("login failed: code=%s %s", res.ErrorCode, res.Message)
		os.Exit(1)
	}
	lg.Infof("connected to %s as %s", ex.Name(), res.Account)

	pub, err := gateway.NewPublisher(cfg.Gateway.ZMQBind, ex.Events(), lg)
	if err != nil {
		lg.Error("start market data publisher", err)
		os.Exit(1)
	}
	defer pub.Close()

	journal, err := storage.NewJournal(cfg.Journal.Path, ex.Events(), lg)
	if err != nil {
		lg.Error("open fill journal", err)
		pub.Close()
		os.Exit(1)
	}
	defer journal.Close()

	ex.Events().Subscribe(events.Error, func(evt *events.Event) {
		lg.Error("exchange error", evt.Err)
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("gateway running, Ctrl+C to stop")
	<-sigs

	lg.Info("exiting")
	ex.Disconnect()
}
