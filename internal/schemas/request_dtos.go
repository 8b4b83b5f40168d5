package schemas

// RegistrationRequest is a struct that represents a registration request
// NickName is required and must be at most 32 characters
// Email is required, must be a valid email and at most 128 characters
// Password is required and must be at least 8 characters
type RegistrationRequest struct {
	NickName string `json:"nickName" validate:"required,max=32,nickname_validation"`
	Email    string `json:"email" validate:"required,email,max=128"`
	Password string `json:"password" validate:"required,min=8,password_validation"`
}

// LoginRequest is a struct that represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=128"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is a struct that represents a PasswordChange request
// OldPassword is required
// NewPassword is required and must be at least 8 characters
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,password_validation"`
}

// CreateReviewRequest is a struct that represents a create review request
// Console is required and must be at most 16 characters
// Rating is between 0 and 10
// Content is required and must be at most 10000 characters
type CreateReviewRequest struct {
	Console string `json:"console" validate:"required,max=16"`
	Rating  int    `json:"rating" validate:"min=0,max=10"`
	Content string `json:"content" validate:"required,max=10000"`
}
