package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type ResourceType string

const (
	ResourceJob       ResourceType = "job"
	ResourceGrant     ResourceType = "grant"
	ResourceService   ResourceType = "service"
	ResourceNews      ResourceType = "news"
	ResourceEducation ResourceType = "education"
)

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("list column is not bytes")
		}
	}
	return json.Unmarshal(bytes, l)
}

// Resource is a community resource: a job posting, grant, public service,
// news item or education opportunity. Type-specific fields stay empty for
// other types.
// swagger:model Resource
type Resource struct {
	BaseModel
	Type        ResourceType `gorm:"size:20;not null;index" json:"type"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`

	// Job fields
	Company      string     `gorm:"size:100" json:"company,omitempty"`
	Location     string     `gorm:"size:100" json:"location,omitempty"`
	Salary       string     `gorm:"size:50" json:"salary,omitempty"`
	JobType      string     `gorm:"size:50" json:"jobType,omitempty"`
	Requirements StringList `gorm:"type:json" json:"requirements,omitempty"`

	// Grant fields
	Amount      string     `gorm:"size:50" json:"amount,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Eligibility StringList `gorm:"type:json" json:"eligibility,omitempty"`

	// Service fields
	Provider    string `gorm:"size:100" json:"provider,omitempty"`
	ServiceType string `gorm:"size:50" json:"serviceType,omitempty"`
	Contact     string `gorm:"size:100" json:"contact,omitempty"`

	// News fields
	Source        string     `gorm:"size:100" json:"source,omitempty"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	ImageURL      string     `gorm:"size:255" json:"imageUrl,omitempty"`

	URL      string `gorm:"size:255" json:"url,omitempty"`
	IsActive bool   `gorm:"default:true;index" json:"isActive"`
}

func (Resource) TableName() string {
	return "resources"
}
