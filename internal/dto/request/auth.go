package request

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// GoogleLoginRequest carries a Google-issued ID token; the backend verifies
// it and exchanges it for its own access token.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}
