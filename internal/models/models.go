package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hearing item input kinds.
const (
	InputTypeText     = "text"
	InputTypeTextarea = "textarea"
	InputTypeSelect   = "select"
)

// Job description statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// StringList stores an ordered list of strings as a JSON text column,
// so it works identically on postgres and sqlite.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Industry is static reference data seeded at startup.
type Industry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Industry) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// HearingItem is one question of an industry's questionnaire.
type HearingItem struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	IndustryID  string     `gorm:"size:36;not null;index;uniqueIndex:idx_industry_item_order" json:"industryId"`
	Question    string     `gorm:"not null" json:"question"`
	Description string     `json:"description"`
	InputType   string     `gorm:"not null;default:text" json:"inputType"`
	Options     StringList `gorm:"type:text" json:"options"`
	Required    bool       `gorm:"not null;default:false" json:"required"`
	Order       int        `gorm:"column:sort_order;not null;uniqueIndex:idx_industry_item_order" json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (h *HearingItem) BeforeCreate(*gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// HearingSession is one completed questionnaire instance.
type HearingSession struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	IndustryID string    `gorm:"size:36;not null;index" json:"industryId"`
	Title      string    `gorm:"not null" json:"title"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Industry  *Industry         `json:"industry,omitempty"`
	Responses []HearingResponse `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`
}

func (s *HearingSession) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// HearingResponse is one answer within a session; at most one per (session, item).
type HearingResponse struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID     string    `gorm:"size:36;not null;uniqueIndex:idx_session_item" json:"sessionId"`
	HearingItemID string    `gorm:"size:36;not null;uniqueIndex:idx_session_item" json:"hearingItemId"`
	Answer        string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	HearingItem *HearingItem `json:"hearingItem,omitempty"`
}

func (r *HearingResponse) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// JobTemplate is an industry-scoped blueprint of sections. At most one
// template per industry may be the default.
type JobTemplate struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	IndustryID  string    `gorm:"size:36;not null;index" json:"industryId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	IsDefault   bool      `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Sections []JobTemplateSection `gorm:"foreignKey:JobTemplateID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

func (t *JobTemplate) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// JobTemplateSection carries the prompt instructions for one posting section.
type JobTemplateSection struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	JobTemplateID  string    `gorm:"size:36;not null;index" json:"jobTemplateId"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `json:"description"`
	PromptTemplate string    `gorm:"type:text;not null" json:"promptTemplate"`
	Order          int       `gorm:"column:sort_order;not null" json:"order"`
	Required       bool      `gorm:"not null;default:true" json:"required"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (s *JobTemplateSection) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// JobDescription is a generated posting, derived from one template and
// (optionally) one hearing session.
type JobDescription struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	JobTemplateID string    `gorm:"size:36;not null;index" json:"jobTemplateId"`
	SessionID     *string   `gorm:"size:36;index" json:"sessionId"`
	Status        string    `gorm:"not null;default:draft" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	JobTemplate    *JobTemplate            `json:"jobTemplate,omitempty"`
	HearingSession *HearingSession         `gorm:"foreignKey:SessionID" json:"hearingSession,omitempty"`
	Sections       []JobDescriptionSection `gorm:"foreignKey:JobDescriptionID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

func (d *JobDescription) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// JobDescriptionSection holds generated text. Its order mirrors the template
// section it was generated from and never changes independently.
type JobDescriptionSection struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	JobDescriptionID  string    `gorm:"size:36;not null;index" json:"jobDescriptionId"`
	TemplateSectionID string    `gorm:"size:36;not null" json:"templateSectionId"`
	Content           string    `gorm:"type:text;not null" json:"content"`
	Order             int       `gorm:"column:sort_order;not null" json:"order"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	TemplateSection *JobTemplateSection `gorm:"foreignKey:TemplateSectionID;constraint:OnDelete:CASCADE" json:"templateSection,omitempty"`
}

func (s *JobDescriptionSection) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// AIProvider is a configured binding to one text-generation vendor.
// At most one provider may be the global default.
type AIProvider struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Provider    string    `gorm:"not null;index" json:"provider"`
	ModelName   string    `gorm:"not null" json:"modelName"`
	APIKey      string    `gorm:"not null" json:"-"`
	BaseURL     string    `json:"baseUrl"`
	IsDefault   bool      `gorm:"not null;default:false" json:"isDefault"`
	Temperature float64   `gorm:"not null;default:0.7" json:"temperature"`
	MaxTokens   int       `gorm:"not null;default:4000" json:"maxTokens"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *AIProvider) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
