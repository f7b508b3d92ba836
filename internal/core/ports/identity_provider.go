package ports

import "context"

// GoogleIdentity is the verified assertion obtained from Google after a
// successful authorization-code exchange. The provider has already verified
// the email; this core does not re-derive it.
type GoogleIdentity struct {
	GoogleID    string
	Email       string
	DisplayName string
}

// IdentityProvider exchanges an OAuth authorization code for a verified
// identity assertion.
type IdentityProvider interface {
	// AuthURL returns the consent-screen URL the browser is redirected to.
	AuthURL(state string) string
	// Exchange trades the callback code for the caller's identity.
	Exchange(ctx context.Context, code string) (*GoogleIdentity, error)
}
