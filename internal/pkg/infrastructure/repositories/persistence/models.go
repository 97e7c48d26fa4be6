package persistence

import (
	"gorm.io/gorm"
)

//Tag is a controlled vocabulary term. Name is the canonical authority code;
//Labels carry its localized display names.
type Tag struct {
	gorm.Model
	Vocabulary   string `gorm:"index:idx_tag_vocab_name,unique"`
	VocabularyID string `gorm:"index"`
	Name         string `gorm:"index:idx_tag_vocab_name,unique"`
	Labels       []TagLabel
}

//TagLabel ...
type TagLabel struct {
	gorm.Model
	TagID uint `gorm:"index"`
	Lang  string
	Label string
}

//RecordLabel is one localized field override for a catalog record.
type RecordLabel struct {
	gorm.Model
	RecordID string `gorm:"index"`
	Field    string
	Lang     string
	Text     string
}

//DistributionLabel is one localized field override for a distribution.
type DistributionLabel struct {
	gorm.Model
	DistributionID string `gorm:"index"`
	Field          string
	Lang           string
	Text           string
}
