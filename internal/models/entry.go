package models

import "time"

// EntryModel is one stored content entry. The payload is schemaless at the
// storage level; the scanner's definition for ModelType describes its shape.
type EntryModel struct {
	Base
	ModelType   string         `json:"model_type" gorm:"index;not null"`
	Slug        string         `json:"slug"       gorm:"index"`
	Status      string         `json:"status"     gorm:"default:draft;index"`
	Data        map[string]any `json:"data"       gorm:"type:longtext;serializer:json"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
}

func (EntryModel) TableName() string { return "entries" }
