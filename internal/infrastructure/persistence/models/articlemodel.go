package models

import "time"

// ArticleModel is the persistence model for knowledge base articles.
type ArticleModel struct {
	ID        uint      `gorm:"primarykey"`
	Slug      string    `gorm:"size:128;uniqueIndex;not null"`
	Title     string    `gorm:"size:255;not null"`
	Body      string    `gorm:"type:text;not null"`
	Tags      string    `gorm:"size:512"`
	Published bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ArticleModel) TableName() string {
	return "knowledge_articles"
}
