package oauth

type CompleteRegisterRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Provider         string `json:"provider" binding:"required"`
	ProviderID       string `json:"provider_id" binding:"required"`
	OrganizationName string `json:"organization_name" binding:"required,min=2,max=255"`
}

type CompleteJoinRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Provider         string `json:"provider" binding:"required"`
	ProviderID       string `json:"provider_id" binding:"required"`
	OrganizationSlug string `json:"organization_slug" binding:"required"`
}

// PendingResponse adalah subset aman dari PendingData: tanpa token apapun.
type PendingResponse struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"provider_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Org        string `json:"org,omitempty"`
}
