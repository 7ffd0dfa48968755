package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type UserResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Provider  entity.AuthProvider `json:"provider"`
	Role      entity.UserRole     `json:"role"`
	CreatedAt time.Time           `json:"created_at"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Provider:  user.Provider,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
