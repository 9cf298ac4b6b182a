package dto

// RegisterRequest payload for new users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// UpdateNameRequest payload for the name self-update.
type UpdateNameRequest struct {
	Name string `json:"name"`
}

// ChangePasswordRequest payload for the password self-update.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
