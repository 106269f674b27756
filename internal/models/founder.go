package models

// Founder represents a founder of a portfolio company.
type Founder struct {
	Base
	CompanyID   string `gorm:"type:uuid;not null;index" json:"company_id"`
	Name        string `gorm:"not null;size:255" json:"name"`
	Email       string `json:"email,omitempty"`
	Title       string `gorm:"size:100" json:"title,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Bio         string `gorm:"size:2000" json:"bio,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}
