package token

// Claims is the normalized identity extracted from any verified token,
// regardless of which provider issued it.
type Claims struct {
	UserID string
	Role   string
	Email  string
	Name   string
}

// Verifier validates an identity token from a single provider. The backend
// JWT verifier and the Google ID-token verifier both implement it, so the
// rest of the application resolves identity through one abstraction.
type Verifier interface {
	Verify(tokenString string) (*Claims, error)
}
