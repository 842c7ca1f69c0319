package identity

import (
	"context"

	"github.com/descope/go-sdk/descope/client"
)

// DescopeVerifier validates Descope session tokens. The subject ID is the
// token's user ID; the email comes from the session claims when present.
type DescopeVerifier struct {
	client *client.DescopeClient
}

func NewDescopeVerifier(projectID string) (*DescopeVerifier, error) {
	descopeClient, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return &DescopeVerifier{client: descopeClient}, nil
}

func (v *DescopeVerifier) Verify(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, ErrInvalidCredential
	}

	authorized, token, err := v.client.Auth.ValidateSessionWithToken(ctx, credential)
	if err != nil || !authorized || token == nil {
		return Identity{}, ErrInvalidCredential
	}

	// Email is optional; only comment authorship records it.
	email, _ := token.Claims["email"].(string)

	return Identity{
		SubjectID: token.ID,
		Email:     email,
	}, nil
}
