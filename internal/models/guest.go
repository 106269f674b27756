package models

import "time"

// Guest represents a VC guest featured on the fund's podcast.
type Guest struct {
	Base
	Name               string     `gorm:"not null;size:255" json:"name"`
	Firm               string     `gorm:"size:255" json:"firm,omitempty"`
	Title              string     `gorm:"size:100" json:"title,omitempty"`
	LinkedInURL        string     `json:"linkedin_url,omitempty"`
	EpisodeURL         string     `json:"episode_url,omitempty"`
	EpisodeSlug        string     `gorm:"uniqueIndex;size:100" json:"episode_slug,omitempty"`
	EpisodePublishedAt *time.Time `json:"episode_published_at,omitempty"`
	PhotoURL           string     `json:"photo_url,omitempty"`
}
