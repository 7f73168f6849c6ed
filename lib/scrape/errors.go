package scrape

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind is the closed set of ways a scrape can fail. Callers branch on
// it with errors.As, never on error text.
type Kind int

const (
	KindParsing Kind = iota + 1
	KindTimeout
	KindNetwork
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindParsing:
		return "parsing"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	}
	return "unknown"
}

type Error struct {
	Site  Site
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	prefix := string(e.Site)
	if prefix != "" {
		prefix += ": "
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s%s error", prefix, e.Kind)
	}
	return fmt.Sprintf("%s%s error: %s", prefix, e.Kind, e.Cause.Error())
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(site Site, kind Kind, cause error) *Error {
	return &Error{Site: site, Kind: kind, Cause: cause}
}

// Classify maps a transport-level failure to its error kind. Exactly
// one of err / statusCode is meaningful: err is set when the request
// never completed, statusCode when the server answered with a non-2xx.
func Classify(site Site, statusCode int, err error) *Error {
	if err != nil {
		if isTimeout(err) {
			return NewError(site, KindTimeout, err)
		}
		return NewError(site, KindNetwork, err)
	}
	if statusCode >= 500 {
		return NewError(site, KindServer, fmt.Errorf("upstream answered %d", statusCode))
	}
	return NewError(site, KindNetwork, fmt.Errorf("upstream answered %d", statusCode))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
