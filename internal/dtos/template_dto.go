package dtos

type CreateTemplateSectionInput struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	PromptTemplate string `json:"promptTemplate" binding:"required"`
	Order          *int   `json:"order"`
	Required       *bool  `json:"required"`
}

type CreateJobTemplateRequest struct {
	Name        string                       `json:"name" binding:"required"`
	IndustryID  string                       `json:"industryId" binding:"required"`
	Description string                       `json:"description"`
	IsDefault   bool                         `json:"isDefault"`
	Sections    []CreateTemplateSectionInput `json:"sections" binding:"required,min=1,dive"`
}

type UpdateJobTemplateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsDefault   *bool   `json:"isDefault"`
}

type CloneJobTemplateRequest struct {
	NewName string `json:"newName" binding:"required"`
}

type AddTemplateSectionRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	PromptTemplate string `json:"promptTemplate" binding:"required"`
	Order          *int   `json:"order"`
	Required       *bool  `json:"required"`
}

type UpdateTemplateSectionRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	PromptTemplate *string `json:"promptTemplate"`
	Order          *int    `json:"order"`
	Required       *bool   `json:"required"`
}

// ReorderSectionsRequest reorders a template's sections: each section takes
// its array index as its new order.
type ReorderSectionsRequest struct {
	Sections []SectionRef `json:"sections" binding:"required,min=1,dive"`
}

type SectionRef struct {
	ID string `json:"id" binding:"required"`
}
