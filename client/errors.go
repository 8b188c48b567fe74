package client

import "fmt"

// ErrorKind classifies why an upstream call failed.
type ErrorKind string

const (
	KindNetwork     ErrorKind = "NETWORK"
	KindStatus      ErrorKind = "UPSTREAM_STATUS"
	KindContentType ErrorKind = "CONTENT_TYPE"
	KindDecode      ErrorKind = "DECODE"
	KindShape       ErrorKind = "UNEXPECTED_SHAPE"
)

// GatewayError is returned for every failed movie lookup. Error() carries
// the root cause for logs; Public() is the only text clients should see.
type GatewayError struct {
	Op   string // "movies" or "movie"
	Kind ErrorKind
	Err  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Public is the generic message surfaced to GraphQL clients.
func (e *GatewayError) Public() string {
	return "failed to fetch " + e.Op
}
