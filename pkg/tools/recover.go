package tools

import (
	"fmt"

	"TaiGate/pkg/errors"
	"TaiGate/pkg/logger"
)

// Recover is meant to be used with a defer statement
func Recover(lg logger.Logger) {
	if r := recover(); r != nil {
		if lg != nil {
			switch t := r.(type) {
			case error:
				if !errors.HasStack(t) {
					r = errors.WrapStack(t)
				}
			}
			lg.Error("recovered panic", r)
		} else {
			fmt.Printf("recovered panic: %v stack: %v", r, errors.GetStack(nil))
		}
	}
}
