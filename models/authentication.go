package models

import "time"

// Authentication stores an issued refresh token. A token must exist here
// to be exchanged for a new access token; deleting the row revokes it.
// Table: authentications
type Authentication struct {
	Token     string    `gorm:"primaryKey;type:text" json:"token"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (Authentication) TableName() string { return "authentications" }

// AuthenticationFilter represents filter criteria for refresh token queries
type AuthenticationFilter struct {
	Token *string
}
