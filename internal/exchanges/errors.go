package exchanges

import "TaiGate/pkg/errors"

var (
	ErrUnsupportedProvider = errors.New("UNSUPPORTED EXCHANGE PROVIDER")
	ErrNotImplemented      = errors.New("EXCHANGE PROVIDER NOT YET IMPLEMENTED")
	ErrMissingDependency   = errors.New("EXCHANGE PROVIDER REQUIRES NATIVE CLIENT")

	ErrNoConnect     = errors.New("EXCHANGE NOT CONNECTED")
	ErrResultTimeOut = errors.New("WAIT REQUEST RESULT TIMEOUT")
	ErrBrokerError   = errors.New("BROKER REPORTED ERROR")
	ErrRequestError  = errors.New("REQUEST ERROR")

	ErrOrderNotFound      = errors.New("ORDER NOT FOUND")
	ErrSymbolNotSupported = errors.New("SYMBOL NOT SUPPORTED")
)
