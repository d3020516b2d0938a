package dto

// AdminProfile is the credential-free view of the admin account.
type AdminProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UpdateAdminProfileRequest edits the admin profile. A password change
// requires the current password to verify first.
type UpdateAdminProfileRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"password"`
}

// AdminLoginRequest is the login payload.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse confirms a successful credential check. No session
// token is issued; the caller is trusted with the outcome.
type AdminLoginResponse struct {
	Message string       `json:"message"`
	Admin   AdminSummary `json:"admin"`
}

// AdminSummary is the minimal admin identity returned after login.
type AdminSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
