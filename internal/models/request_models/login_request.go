package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignUpRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	FirstName   string   `json:"first_name" binding:"required,max=50"`
	LastName    string   `json:"last_name" binding:"required,max=50"`
	AvatarURL   *string  `json:"avatar_url" binding:"omitempty,url"`
	Preferences []string `json:"preferences"`
}
