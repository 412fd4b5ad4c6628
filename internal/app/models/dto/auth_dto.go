package dto

import "github.com/yigit/clubhub/internal/app/models"

// SignupRequest represents a new account registration
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=student admin"`
}

// ToCommand converts the request into a signup command; role defaults to student
func (r SignupRequest) ToCommand() models.SignupCommand {
	role := models.RoleType(r.Role)
	if role == "" {
		role = models.RoleStudent
	}
	return models.SignupCommand{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     role,
	}
}

// SigninRequest represents login credentials
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int          `json:"expiresIn"`
	User        UserResponse `json:"user"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewUserResponse builds the public view of a user
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
