package entity

import "time"

// Brand is a Zendesk brand record.
type Brand struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BrandAgent links a brand to a user (a brand membership edge).
type BrandAgent struct {
	ID        int64     `json:"id"`
	BrandID   int64     `json:"brand_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
