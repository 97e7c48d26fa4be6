package database_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/matryer/is"

	db "github.com/opendatahub/api-dcatapit/internal/pkg/infrastructure/repositories/database"
)

func TestTagRoundTrip(t *testing.T) {
	is, ctx, store := testSetup(t)

	err := store.AddTag(ctx, "eu_themes", "theme.data-theme-skos", "ENVI", map[string]string{
		"it": "Ambiente",
		"en": "Environment",
	})
	is.NoErr(err)

	labels, err := store.GetLocalizedTermLabels(ctx, "ENVI")
	is.NoErr(err)
	is.Equal(labels["it"], "Ambiente")
	is.Equal(labels["en"], "Environment")
}

func TestUnknownTermYieldsEmptyLabels(t *testing.T) {
	is, ctx, store := testSetup(t)

	labels, err := store.GetLocalizedTermLabels(ctx, "NOPE")
	is.NoErr(err)
	is.Equal(len(labels), 0)
}

func TestAddTagReplacesLabels(t *testing.T) {
	is, ctx, store := testSetup(t)

	err := store.AddTag(ctx, "eu_themes", "theme.data-theme-skos", "ENVI", map[string]string{"it": "Ambiente"})
	is.NoErr(err)
	err = store.AddTag(ctx, "eu_themes", "theme.data-theme-skos", "ENVI", map[string]string{"it": "Territorio"})
	is.NoErr(err)

	labels, err := store.GetLocalizedTermLabels(ctx, "ENVI")
	is.NoErr(err)
	is.Equal(len(labels), 1)
	is.Equal(labels["it"], "Territorio")
}

func TestControlledVocabularyValuesMatchesNamesAndLabels(t *testing.T) {
	is, ctx, store := testSetup(t)

	err := store.AddTag(ctx, "eu_themes", "theme.data-theme-skos", "ENVI", map[string]string{"it": "Ambiente"})
	is.NoErr(err)
	err = store.AddTag(ctx, "eu_themes", "theme.data-theme-skos", "TRAN", map[string]string{"it": "Trasporti"})
	is.NoErr(err)

	codes, err := store.ControlledVocabularyValues(ctx, "eu_themes", "theme.data-theme-skos", []string{"ambiente", "TRAN", "boats"})
	is.NoErr(err)
	is.Equal(codes, []string{"ENVI", "TRAN"})
}

func TestRecordLabelsGroupByField(t *testing.T) {
	is, ctx, store := testSetup(t)

	err := store.SetRecordLabels(ctx, "rec-1", "title", map[string]string{"it": "Titolo", "de": "Titel"})
	is.NoErr(err)
	err = store.SetRecordLabels(ctx, "rec-1", "notes", map[string]string{"it": "Descrizione"})
	is.NoErr(err)

	labels, err := store.GetLabelsForRecord(ctx, "rec-1")
	is.NoErr(err)
	is.Equal(len(labels), 2)
	is.Equal(labels["title"]["de"], "Titel")
	is.Equal(labels["notes"]["it"], "Descrizione")
}

func TestSeedVocabularies(t *testing.T) {
	is, ctx, store := testSetup(t)

	err := db.LoadVocabularies(ctx, store, bytes.NewBufferString(seedYaml))
	is.NoErr(err)

	codes, err := store.ControlledVocabularyValues(ctx, "places", "theme.places-skos", []string{"Bolzano"})
	is.NoErr(err)
	is.Equal(codes, []string{"ITA_BZO"})
}

func testSetup(t *testing.T) (*is.I, context.Context, db.Datastore) {
	is := is.New(t)
	ctx := context.Background()

	store, err := db.NewDatabaseConnection(ctx, db.NewSQLiteConnector())
	is.NoErr(err)

	return is, ctx, store
}

const seedYaml string = `
vocabularies:
  - name: places
    id: theme.places-skos
    tags:
      - name: ITA_BZO
        labels:
          it: Bolzano
          de: Bozen
`
