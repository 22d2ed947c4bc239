package models

import "time"

// UserAlbumLike records that a user likes an album. The unique index on
// (user_id, album_id) rejects duplicate likes at the store; concurrent
// check-then-insert for the same pair races and the second writer fails
// on the constraint.
// Table: user_album_likes
type UserAlbumLike struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:uk_user_album_likes_pair" json:"userId"`
	AlbumID   string    `gorm:"size:64;not null;uniqueIndex:uk_user_album_likes_pair;index:idx_user_album_likes_album_id" json:"albumId"`
	User      *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Album     *Album    `gorm:"foreignKey:AlbumID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (UserAlbumLike) TableName() string { return "user_album_likes" }

// UserAlbumLikeFilter represents filter criteria for like queries
type UserAlbumLikeFilter struct {
	ID      *string
	UserID  *string
	AlbumID *string
}
