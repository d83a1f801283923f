package types

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null;column:title" json:"title"`
	YoutubeID    string    `gorm:"not null;column:youtube_id" json:"youtube_id"`
	YoutubeURL   string    `gorm:"not null;column:youtube_url" json:"youtube_url"`
	ThumbnailURL string    `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	PublishedAt  time.Time `gorm:"not null;column:published_at" json:"published_at"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (Video) TableName() string { return "videos" }

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

type BlogPost struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Slug        string     `gorm:"index;column:slug" json:"slug"`
	Excerpt     string     `gorm:"column:excerpt" json:"excerpt"`
	Content     string     `gorm:"type:text;column:content" json:"content"`
	Status      string     `gorm:"not null;default:'draft';index;column:status" json:"status"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (BlogPost) TableName() string { return "blog_posts" }

type NewsItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Content     string    `gorm:"type:text;column:content" json:"content"`
	SourceURL   string    `gorm:"column:source_url" json:"source_url"`
	PublishedAt time.Time `gorm:"not null;column:published_at" json:"published_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (NewsItem) TableName() string { return "news_items" }
