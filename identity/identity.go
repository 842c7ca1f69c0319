// Package identity abstracts the external identity provider. The rest of the
// application only ever sees a verified {subject ID, email} pair.
package identity

import (
	"context"
	"errors"
)

// ErrInvalidCredential is returned for an absent, malformed or rejected
// bearer credential. Callers decide whether that means 401 or "no requester".
var ErrInvalidCredential = errors.New("invalid credential")

// Identity is the verified result of a credential exchange.
type Identity struct {
	SubjectID string
	Email     string
}

// Verifier exchanges an opaque bearer credential for a verified identity.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}
