package sender

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecord is matched by every error Builder.Build returns.
	ErrInvalidRecord = errors.New("invalid metric record")
	// ErrInvalidArgument is returned for nil records and unusable client configuration.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ConnectionError reports a failure to establish or use the connection to the agent.
// The metric being written when it occurred is not retried.
type ConnectionError struct {
	Op   string
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
