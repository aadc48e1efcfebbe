// Package session holds the signed-in identity that is handed explicitly to
// every component that needs to know who is acting.
package session

// Identity is the identity handle issued by the identity provider. The zero
// value is the anonymous identity.
type Identity struct {
	UID   string
	Email string
}

// Anonymous is the explicit "no session" identity.
var Anonymous = Identity{}

func (i Identity) SignedIn() bool {
	return i.UID != ""
}

// Session is the result of a successful password sign-in.
type Session struct {
	Identity
	IDToken      string
	RefreshToken string
	ExpiresIn    int64
}
