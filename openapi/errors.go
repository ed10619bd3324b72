package openapi

import (
	"errors"
	"fmt"
)

// ErrRouteNotRecorded is returned when documentation is attached to an
// operation whose route has not been recorded yet. Such a fragment could
// never be placed into the document paths.
var ErrRouteNotRecorded = errors.New("openapi: route not recorded")

// OrderingError reports a documentation call that ran before the routing
// layer recorded the route for the operation identity.
type OrderingError struct {
	Owner     string
	Operation string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("openapi: no route recorded for operation %q of owner %q; record the route before documenting it", e.Operation, e.Owner)
}

// Unwrap lets errors.Is match ErrRouteNotRecorded.
func (e *OrderingError) Unwrap() error {
	return ErrRouteNotRecorded
}
