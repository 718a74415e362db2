package dto

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleSignInRequest carries the profile obtained from Google after the OAuth exchange
type GoogleSignInRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	GoogleID string `json:"googleId"`
}

// PublicUser is the user shape exposed by the auth endpoints
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type UserResponse struct {
	User PublicUser `json:"user"`
}

type ProfileUpdateRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// GoogleSuccessQuery is appended to the client redirect after a server-side Google sign in
type GoogleSuccessQuery struct {
	ID       string `url:"id"`
	Email    string `url:"email"`
	Name     string `url:"name,omitempty"`
	PhotoURL string `url:"photoURL,omitempty"`
}
