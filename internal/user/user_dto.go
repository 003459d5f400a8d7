package user

type ProfileResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	IsActive      bool   `json:"is_active"`
}

// MemberResponse adalah subset direktori: tanpa status verifikasi email.
type MemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=255"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}
