package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Configurations struct {
	debugMode bool

	Logger    Logger
	Exchanges Exchanges
	Gateway   Gateway
	Journal   Journal
}

func (c Configurations) IsDebug() bool {
	return c.debugMode
}

type Logger struct {
	FileOutput bool
}

type Exchanges struct {
	// Provider selects the adapter when no explicit name is passed
	Provider string
	PFCF     PFCF
}

type PFCF struct {
	Account     string
	Password    string
	Environment string
	// PositionTimeout bounds the blocking position query
	PositionTimeout time.Duration
}

type Gateway struct {
	// ZMQBind is the PUB socket endpoint for the market data publisher
	ZMQBind string
}

type Journal struct {
	Path string
}

// Load reads configuration from TAIGATE_* environment variables over the
// built-in defaults. Values are returned, never kept in package state.
func Load() Configurations {
	v := viper.New()

	v.SetEnvPrefix("TAIGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("exchange", "")
	v.SetDefault("pfcf.account", "")
	v.SetDefault("pfcf.password", "")
	v.SetDefault("pfcf.environment", "test")
	v.SetDefault("pfcf.position_timeout", 5*time.Second)
	v.SetDefault("gateway.zmq_bind", "tcp://*:5555")
	v.SetDefault("journal.path", "taigate.db")

	return Configurations{
		debugMode: v.GetBool("debug"),
		Logger: Logger{
			FileOutput: false,
		},
		Exchanges: Exchanges{
			Provider: v.GetString("exchange"),
			PFCF: PFCF{
				Account:         v.GetString("pfcf.account"),
				Password:        v.GetString("pfcf.password"),
				Environment:     v.GetString("pfcf.environment"),
				PositionTimeout: v.GetDuration("pfcf.position_timeout"),
			},
		},
		Gateway: Gateway{
			ZMQBind: v.GetString("gateway.zmq_bind"),
		},
		Journal: Journal{
			Path: v.GetString("journal.path"),
		},
	}
}
