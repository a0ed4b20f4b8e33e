package dtos

type HearingResponseInput struct {
	HearingItemID string `json:"hearingItemId" binding:"required"`
	Answer        string `json:"answer"`
}

type CreateHearingSessionRequest struct {
	IndustryID string                 `json:"industryId" binding:"required"`
	Title      string                 `json:"title" binding:"required"`
	Responses  []HearingResponseInput `json:"responses" binding:"required,min=1,dive"`
}
