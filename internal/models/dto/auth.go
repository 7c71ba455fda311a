package dto

import "github.com/hongminglow/user-auth-be/internal/models"

type RegisterRequest struct {
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	PhoneNumber string       `json:"phone_number"`
	Email       string       `json:"email"`
	Gender      string       `json:"gender"`
	DOB         *models.Date `json:"dob"`
	Role        string       `json:"role"`
	Password    string       `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is returned by register and login.
type UserResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}
