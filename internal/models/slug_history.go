package models

// SlugHistoryModel records that an old slug for a content type now points to
// a given entry, so renamed content keeps redirecting.
type SlugHistoryModel struct {
	Base
	Slug      string `json:"slug"       gorm:"index;not null"`
	ModelType string `json:"model_type" gorm:"index;not null"`
	EntryID   string `json:"entry_id"   gorm:"index;type:char(36);not null"`
}

func (SlugHistoryModel) TableName() string { return "slug_histories" }
