package models

import "time"

// Post is a blog entry belonging to exactly one category. Image holds the
// storage path of the uploaded blob; the blob is written before the row that
// references it is committed.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:256;not null" json:"title"`
	Content    string    `gorm:"size:256;not null" json:"content"`
	CategoryID uint      `gorm:"index;not null" json:"categoryId"`
	Image      string    `gorm:"size:256;not null" json:"image"`
	Status     int       `gorm:"default:1" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
