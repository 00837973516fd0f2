// Package kvstore provides the register's local key-value persistence:
// each namespace holds one JSON-encoded array that is read and rewritten
// whole, mirroring the browser-storage layout the register UI expects.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

const (
	NamespaceProducts  = "products"
	NamespaceSales     = "sales"
	NamespaceCustomers = "customers"
)

// ErrNamespaceEmpty is returned by Read when a namespace has never been
// written; callers treat it as an empty array.
var ErrNamespaceEmpty = errors.New("kvstore: namespace empty")

// Store abstracts the local key-value backend.
type Store interface {
	Read(ctx context.Context, namespace string) ([]byte, error)
	Write(ctx context.Context, namespace string, payload []byte) error
	Ping(ctx context.Context) error
	Close() error
}

var namespacePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func validateNamespace(namespace string) error {
	if !namespacePattern.MatchString(namespace) {
		return fmt.Errorf("kvstore: invalid namespace %q", namespace)
	}
	return nil
}
