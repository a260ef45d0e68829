package site

import "time"

// Service is a purchasable offering shown on the marketing site.
type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"not null;uniqueIndex;size:128" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	// Starting price in minor currency units; marketing hint only, the
	// charged amount always comes from the create-intent request.
	PriceFrom *int64 `json:"priceFrom,omitempty"`
	Published bool   `gorm:"index" json:"published"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Testimonial struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Author    string `gorm:"not null" json:"author"`
	Role      string `json:"role"`
	Quote     string `gorm:"type:text" json:"quote"`
	Published bool   `gorm:"index" json:"published"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FAQ struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Question  string `gorm:"not null" json:"question"`
	Answer    string `gorm:"type:text" json:"answer"`
	Position  int    `gorm:"not null;default:0;index" json:"position"`
	Published bool   `gorm:"index" json:"published"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Homepage holds the single-row homepage copy.
type Homepage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
	AboutText    string `gorm:"type:text" json:"aboutText"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactSubmission struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	Email   string  `gorm:"not null" json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message string  `gorm:"type:text" json:"message"`

	CreatedAt time.Time `json:"createdAt"`
}
