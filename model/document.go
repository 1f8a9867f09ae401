package model

import "time"

type Document struct {
	ID     uint `gorm:"primaryKey;autoIncrement;index" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Title string `gorm:"size:255;not null" json:"title"`
	// Raw text content as uploaded. Kept in the database instead of object
	// storage since documents are plain study notes, not binary files
	Content string `gorm:"type:text;not null" json:"content"`
	// Populated by the summarization workflow, nil until then
	Summary    *string   `gorm:"type:text" json:"summary"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
