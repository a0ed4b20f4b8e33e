package dtos

type CreateJobDescriptionRequest struct {
	Title         string `json:"title" binding:"required"`
	SessionID     string `json:"sessionId" binding:"required"`
	JobTemplateID string `json:"jobTemplateId" binding:"required"`
	AIProviderID  string `json:"aiProviderId"`
}

type RegenerateJobDescriptionRequest struct {
	AIProviderID string `json:"aiProviderId"`
}

type UpdateJobDescriptionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateJobDescriptionSectionRequest struct {
	Content string `json:"content" binding:"required"`
}

// JobDescriptionFilter narrows the job description listing.
type JobDescriptionFilter struct {
	SessionID string
	Status    string
	Page      int
	Limit     int
}

// Pagination is the envelope returned with every list of job descriptions.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
