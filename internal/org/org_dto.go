package org

type OrganizationResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Domain string `json:"domain,omitempty"`
}

type UpdateOrganizationRequest struct {
	Name   string `json:"name" binding:"required,min=2,max=255"`
	Domain string `json:"domain" binding:"omitempty,fqdn"`
}
