package service

import "fmt"

// NotFoundError reports that no product with the given ID exists. It is
// a normal outcome of a lookup, distinct from store failures, and maps
// to a 404 at the transport layer.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product with ID %q not found", e.ID)
}
