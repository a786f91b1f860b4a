package model

// User profile as returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// LoginRequest is validated client-side before any network call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,appemail" binding:"required,email"`
	Password string `json:"password" validate:"required,userpassword" binding:"required,min=6"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2" binding:"required,min=2"`
	Email    string `json:"email" validate:"required,appemail" binding:"required,email"`
	Phone    string `json:"phone" validate:"required,phonenumber" binding:"required"`
	Password string `json:"password" validate:"required,userpassword" binding:"required,min=6"`
}

// AuthResponse is the success payload of login and signup.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
