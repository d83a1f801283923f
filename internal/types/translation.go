package types

import (
	"time"

	"github.com/google/uuid"
)

// TranslationKey is the registry of authored UI strings. English is the
// source language; the batch job fills other languages lazily.
type TranslationKey struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TranslationKey string    `gorm:"uniqueIndex;not null;column:translation_key" json:"translation_key"`
	SourceText     string    `gorm:"not null;column:source_text" json:"source_text"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (TranslationKey) TableName() string { return "translation_keys" }

type Translation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TranslationKey string    `gorm:"not null;index:idx_key_lang,unique;column:translation_key" json:"translation_key"`
	LanguageCode   string    `gorm:"not null;index:idx_key_lang,unique;column:language_code" json:"language_code"`
	SourceText     string    `gorm:"column:source_text" json:"source_text"`
	TranslatedText string    `gorm:"not null;column:translated_text" json:"translated_text"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Translation) TableName() string { return "translations" }
