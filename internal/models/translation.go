package models

// TranslationModel stores one translated field value, keyed by model type,
// entry, field and locale.
type TranslationModel struct {
	Base
	ModelType string `json:"model_type" gorm:"uniqueIndex:idx_translation_key;not null"`
	EntryID   string `json:"entry_id"   gorm:"uniqueIndex:idx_translation_key;type:char(36);not null"`
	Field     string `json:"field"      gorm:"uniqueIndex:idx_translation_key;not null"`
	Locale    string `json:"locale"     gorm:"uniqueIndex:idx_translation_key;size:12;not null"`
	Value     string `json:"value"      gorm:"type:longtext"`
}

func (TranslationModel) TableName() string { return "translations" }
