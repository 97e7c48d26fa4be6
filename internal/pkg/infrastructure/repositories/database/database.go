package database

import (
	"context"
	"errors"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opendatahub/api-dcatapit/internal/pkg/infrastructure/repositories/persistence"
)

//Datastore is an interface that is used to inject the database into different handlers to improve testability
type Datastore interface {
	AddTag(ctx context.Context, vocabulary, vocabularyID, name string, labels map[string]string) error
	SetRecordLabels(ctx context.Context, recordID, field string, labels map[string]string) error
	SetDistributionLabels(ctx context.Context, distributionID, field string, labels map[string]string) error

	GetLabelsForRecord(ctx context.Context, recordID string) (map[string]map[string]string, error)
	GetLabelsForDistribution(ctx context.Context, distributionID string) (map[string]map[string]string, error)
	GetLocalizedTermLabels(ctx context.Context, code string) (map[string]string, error)

	ControlledVocabularyValues(ctx context.Context, vocabularyName, vocabularyID string, keywords []string) ([]string, error)
}

type myDB struct {
	impl *gorm.DB
}

//ConnectorFunc is used to inject a database connection method into NewDatabaseConnection
type ConnectorFunc func() (*gorm.DB, error)

//NewSQLiteConnector opens a connection to a local sqlite database
func NewSQLiteConnector() ConnectorFunc {
	return func() (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})

		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
		}

		return db, err
	}
}

//NewDatabaseConnection initializes a new connection to the database and wraps it in a Datastore
func NewDatabaseConnection(ctx context.Context, connect ConnectorFunc) (Datastore, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	db := &myDB{
		impl: impl,
	}

	err = db.impl.AutoMigrate(
		&persistence.Tag{},
		&persistence.TagLabel{},
		&persistence.RecordLabel{},
		&persistence.DistributionLabel{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func (db *myDB) AddTag(ctx context.Context, vocabulary, vocabularyID, name string, labels map[string]string) error {
	tag := persistence.Tag{}

	result := db.impl.Where(&persistence.Tag{Vocabulary: vocabulary, Name: name}).First(&tag)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		tag = persistence.Tag{Vocabulary: vocabulary, VocabularyID: vocabularyID, Name: name}
		if result := db.impl.Create(&tag); result.Error != nil {
			return result.Error
		}
	}

	db.impl.Where(&persistence.TagLabel{TagID: tag.ID}).Delete(&persistence.TagLabel{})

	for lang, label := range labels {
		result := db.impl.Create(&persistence.TagLabel{TagID: tag.ID, Lang: lang, Label: label})
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

func (db *myDB) SetRecordLabels(ctx context.Context, recordID, field string, labels map[string]string) error {
	db.impl.Where(&persistence.RecordLabel{RecordID: recordID, Field: field}).Delete(&persistence.RecordLabel{})

	for lang, text := range labels {
		result := db.impl.Create(&persistence.RecordLabel{RecordID: recordID, Field: field, Lang: lang, Text: text})
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

func (db *myDB) SetDistributionLabels(ctx context.Context, distributionID, field string, labels map[string]string) error {
	db.impl.Where(&persistence.DistributionLabel{DistributionID: distributionID, Field: field}).Delete(&persistence.DistributionLabel{})

	for lang, text := range labels {
		result := db.impl.Create(&persistence.DistributionLabel{DistributionID: distributionID, Field: field, Lang: lang, Text: text})
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

func (db *myDB) GetLabelsForRecord(ctx context.Context, recordID string) (map[string]map[string]string, error) {
	rows := []persistence.RecordLabel{}

	result := db.impl.Where(&persistence.RecordLabel{RecordID: recordID}).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	labels := map[string]map[string]string{}
	for _, row := range rows {
		if labels[row.Field] == nil {
			labels[row.Field] = map[string]string{}
		}
		labels[row.Field][row.Lang] = row.Text
	}

	return labels, nil
}

func (db *myDB) GetLabelsForDistribution(ctx context.Context, distributionID string) (map[string]map[string]string, error) {
	rows := []persistence.DistributionLabel{}

	result := db.impl.Where(&persistence.DistributionLabel{DistributionID: distributionID}).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	labels := map[string]map[string]string{}
	for _, row := range rows {
		if labels[row.Field] == nil {
			labels[row.Field] = map[string]string{}
		}
		labels[row.Field][row.Lang] = row.Text
	}

	return labels, nil
}

//GetLocalizedTermLabels returns the localized labels of the vocabulary term
//with the given code, or an empty map for unknown codes.
func (db *myDB) GetLocalizedTermLabels(ctx context.Context, code string) (map[string]string, error) {
	tag := persistence.Tag{}

	result := db.impl.Preload("Labels").Where(&persistence.Tag{Name: code}).First(&tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return map[string]string{}, nil
		}
		return nil, result.Error
	}

	labels := map[string]string{}
	for _, l := range tag.Labels {
		labels[l.Lang] = l.Label
	}

	return labels, nil
}

// ControlledVocabularyValues matches keywords against a vocabulary, by
// canonical code first and by localized label second, case insensitively.
// Keywords that match nothing are logged and dropped.
func (db *myDB) ControlledVocabularyValues(ctx context.Context, vocabularyName, vocabularyID string, keywords []string) ([]string, error) {
	log := logging.GetFromContext(ctx)

	tags := []persistence.Tag{}
	query := db.impl.Preload("Labels")
	if vocabularyID != "" {
		query = query.Where(&persistence.Tag{Vocabulary: vocabularyName, VocabularyID: vocabularyID})
	} else {
		query = query.Where(&persistence.Tag{Vocabulary: vocabularyName})
	}

	if result := query.Find(&tags); result.Error != nil {
		return nil, result.Error
	}

	codes := []string{}

	for _, keyword := range keywords {
		code, found := matchKeyword(tags, keyword)
		if !found {
			log.Warn().Msgf("keyword %q matched no %s term", keyword, vocabularyName)
			continue
		}
		codes = append(codes, code)
	}

	return codes, nil
}

func matchKeyword(tags []persistence.Tag, keyword string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(keyword))

	for _, tag := range tags {
		if strings.ToLower(tag.Name) == needle {
			return tag.Name, true
		}
		for _, label := range tag.Labels {
			if strings.ToLower(label.Label) == needle {
				return tag.Name, true
			}
		}
	}

	return "", false
}
