package models

import "encoding/json"

// Domain models matching the database schema in db/migrations/*/0001_init.sql.
// Timestamps are unix milliseconds (UTC).

// DefaultThemeColor is applied when a company has no theme colour of its own.
const DefaultThemeColor = "#4F46E5"

type Company struct {
	ID          string  `json:"id" db:"id"`
	Slug        string  `json:"slug" db:"slug" validate:"required,slug"`
	Name        string  `json:"name" db:"name" validate:"required"`
	Description *string `json:"description" db:"description"`
	LogoURL     *string `json:"logoUrl" db:"logo_url"`
	BannerURL   *string `json:"bannerUrl" db:"banner_url"`
	VideoURL    *string `json:"videoUrl" db:"video_url"`
	ThemeColor  string  `json:"themeColor" db:"theme_color"`
	Created     int64   `json:"createdAt" db:"created_at"`
	Updated     int64   `json:"updatedAt" db:"updated_at"`
}

type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Name         string `json:"name" db:"name" validate:"required"`
	CompanyID    string `json:"companyId" db:"company_id"`
	Created      int64  `json:"createdAt" db:"created_at"`
}

type Job struct {
	ID          string  `json:"id" db:"id"`
	CompanyID   string  `json:"companyId" db:"company_id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Location    string  `json:"location" db:"location"`
	JobType     string  `json:"jobType" db:"job_type"`
	Department  *string `json:"department" db:"department"`
	IsActive    bool    `json:"isActive" db:"is_active"`
	Created     int64   `json:"createdAt" db:"created_at"`
	Updated     int64   `json:"updatedAt" db:"updated_at"`
}

// Status is the dashboard label for the job's active flag.
func (j Job) Status() string {
	if j.IsActive {
		return "Active"
	}
	return "Inactive"
}

type PageSection struct {
	ID          string          `json:"id" db:"id"`
	CompanyID   string          `json:"companyId" db:"company_id"`
	SectionType string          `json:"sectionType" db:"section_type"`
	Title       string          `json:"title" db:"title"`
	Content     json.RawMessage `json:"content" db:"content"`
	Order       int             `json:"order" db:"sort_order"`
	IsVisible   bool            `json:"isVisible" db:"is_visible"`
	Created     int64           `json:"createdAt" db:"created_at"`
	Updated     int64           `json:"updatedAt" db:"updated_at"`
}

// Principal is the authenticated identity attached to a request. It is also
// the exact payload of the session token.
type Principal struct {
	UserID      string `json:"userId"`
	CompanyID   string `json:"companyId"`
	CompanySlug string `json:"companySlug"`
}

// CompanyStats backs the dashboard summary.
type CompanyStats struct {
	TotalJobs    int64 `json:"totalJobs"`
	ActiveJobs   int64 `json:"activeJobs"`
	PageSections int64 `json:"pageSections"`
}
