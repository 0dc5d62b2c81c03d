package dto

import "github.com/FlynntKnapp/planit-mini/internal/core/domain"

// UserResponse defines the public representation of a user.
type UserResponse struct {
	UserID   string   `json:"userID"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	IsStaff  bool     `json:"isStaff"`
	Groups   []string `json:"groups,omitempty"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
		Groups:   user.Groups,
	}
}
