package ports

import "context"

// Profile is the identity an external provider vouches for.
type Profile struct {
	Email string
	Name  string
}

// ProviderToken is the result of an authorization-code exchange. Profile is
// set when the token response already embedded identity claims.
type ProviderToken struct {
	AccessToken string
	TokenType   string
	Profile     *Profile
}

// IdentityProvider is an external OAuth 2.0 / OpenID Connect provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*ProviderToken, error)
	FetchProfile(ctx context.Context, token *ProviderToken) (*Profile, error)
}
