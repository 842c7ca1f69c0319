package api

import (
	"context"

	"github.com/rpupo63/project-showcase-backend/identity"
)

type keyType string

const identityKey keyType = "identity"

// ctxWithIdentity stores the verified identity on the request context.
func ctxWithIdentity(ctx context.Context, ident identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// ctxIdentity retrieves the verified identity, if the request carried one.
func ctxIdentity(ctx context.Context) (identity.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(identity.Identity)
	return ident, ok
}

// ctxSubjectID returns the requester's subject ID, or "" for anonymous requests.
func ctxSubjectID(ctx context.Context) string {
	ident, ok := ctxIdentity(ctx)
	if !ok {
		return ""
	}
	return ident.SubjectID
}
