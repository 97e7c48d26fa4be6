package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/go-chi/chi/v5"
	"github.com/knakk/rdf"
	"github.com/rs/zerolog"

	"github.com/opendatahub/api-dcatapit/internal/pkg/application/config"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/graph"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/harvest"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/profiles"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/services/licenses"
	"github.com/opendatahub/api-dcatapit/internal/pkg/application/services/organisations"
	"github.com/opendatahub/api-dcatapit/internal/pkg/domain"
	"github.com/opendatahub/api-dcatapit/internal/pkg/infrastructure/repositories/database"
	"github.com/opendatahub/api-dcatapit/internal/pkg/presentation"
)

const serviceName string = "api-dcatapit"

var configFileName string
var organisationsFileName string
var licensesFileName string
var vocabularyFileName string
var sourceConfigFileName string
var documentsFileName string
var recordsFileName string

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&configFileName, "config", "/opt/dcatapit/config.yaml", "Catalog configuration")
	flag.StringVar(&organisationsFileName, "organisations", "/opt/dcatapit/organisations.yaml", "Organisation registry")
	flag.StringVar(&licensesFileName, "licenses", "", "License registry, built in registry when omitted")
	flag.StringVar(&vocabularyFileName, "vocabulary", "/opt/dcatapit/vocabularies.yaml", "Controlled vocabulary seed")
	flag.StringVar(&sourceConfigFileName, "source", "", "Harvest source mapping configuration, built in defaults when omitted")
	flag.StringVar(&documentsFileName, "documents", "", "Harvested documents to extract records from")
	flag.StringVar(&recordsFileName, "records", "", "Catalog records to serve")
	flag.Parse()

	cfg := loadConfiguration(log)

	db, err := database.NewDatabaseConnection(ctx, database.NewSQLiteConnector())
	if err != nil {
		log.Fatal().Msgf("failed to connect to database, shutting down... %s", err.Error())
	}

	seedVocabularies(ctx, log, db)

	orgs := loadOrganisations(log)
	licenseRegistry := loadLicenses(log)

	records := loadRecords(log)
	records = append(records, extractDocuments(ctx, log, db, licenseRegistry)...)

	if len(records) == 0 {
		log.Warn().Msg("no catalog records loaded, the export will only contain the catalog itself")
	}

	dcatResponseBuffer, err := renderCatalog(ctx, cfg, db, orgs, log, records)
	if err != nil {
		log.Fatal().Msgf("failed to render catalog: %s", err.Error())
	}

	port := env.GetVariableOrDefault(log, "SERVICE_PORT", "8880")

	r := chi.NewRouter()
	api := presentation.NewAPI(r, ctx, dcatResponseBuffer)

	if err := api.Start(port); err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}

// renderCatalog serializes all records into one profile compliant graph and
// returns the turtle rendition to be served.
func renderCatalog(ctx context.Context, cfg *config.Configuration, db database.Datastore, orgs organisations.Registry, log zerolog.Logger, records []domain.CatalogRecord) (*bytes.Buffer, error) {
	g := graph.New()
	profile := profiles.New(cfg, db, orgs, log)

	catalog := profile.SerializeCatalog(ctx, g)

	for i := range records {
		rec := &records[i]

		profile.SerializeBaseline(g, rec)

		ref, err := profile.SerializeDataset(ctx, g, rec)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize record %s: %w", rec.ID, err)
		}

		profile.LinkDataset(g, catalog, ref)
	}

	buf := bytes.NewBuffer(nil)
	if err := g.Serialize(buf, rdf.Turtle); err != nil {
		return nil, err
	}

	log.Info().Msgf("rendered %d records into a %d triple catalog export", len(records), g.Len())

	return buf, nil
}

func loadConfiguration(log zerolog.Logger) *config.Configuration {
	file, err := os.Open(configFileName)
	if err != nil {
		log.Info().Msgf("no configuration file at %s, using defaults", configFileName)
		return config.Default()
	}
	defer file.Close()

	cfg, err := config.Load(file)
	if err != nil {
		log.Fatal().Msgf("failed to load configuration: %s", err.Error())
	}

	return cfg
}

func seedVocabularies(ctx context.Context, log zerolog.Logger, db database.Datastore) {
	file, err := os.Open(vocabularyFileName)
	if err != nil {
		log.Warn().Msgf("no vocabulary seed at %s, keyword mapping will match nothing", vocabularyFileName)
		return
	}
	defer file.Close()

	if err := database.LoadVocabularies(ctx, db, file); err != nil {
		log.Fatal().Msgf("failed to seed vocabularies: %s", err.Error())
	}
}

func loadOrganisations(log zerolog.Logger) organisations.Registry {
	file, err := os.Open(organisationsFileName)
	if err != nil {
		log.Warn().Msgf("no organisation registry at %s, contact points will be omitted", organisationsFileName)
		file = nil
	}

	var registry organisations.Registry
	if file != nil {
		defer file.Close()
		registry, err = organisations.NewRegistry(file)
	} else {
		registry, err = organisations.NewRegistry(bytes.NewBufferString(""))
	}

	if err != nil {
		log.Fatal().Msgf("failed to load organisation registry: %s", err.Error())
	}

	return registry
}

func loadLicenses(log zerolog.Logger) licenses.Registry {
	if licensesFileName == "" {
		registry, _ := licenses.NewRegistry(nil)
		return registry
	}

	file, err := os.Open(licensesFileName)
	if err != nil {
		log.Fatal().Msgf("failed to open license registry %s: %s", licensesFileName, err.Error())
	}
	defer file.Close()

	registry, err := licenses.NewRegistry(file)
	if err != nil {
		log.Fatal().Msgf("failed to load license registry: %s", err.Error())
	}

	return registry
}

func loadRecords(log zerolog.Logger) []domain.CatalogRecord {
	if recordsFileName == "" {
		return nil
	}

	file, err := os.Open(recordsFileName)
	if err != nil {
		log.Fatal().Msgf("failed to open records file %s: %s", recordsFileName, err.Error())
	}
	defer file.Close()

	records := []domain.CatalogRecord{}
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		log.Fatal().Msgf("failed to parse records file: %s", err.Error())
	}

	log.Info().Msgf("loaded %d records from %s", len(records), recordsFileName)

	return records
}

// extractDocuments runs harvested documents through the extractor, turning
// them into catalog records alongside the ones loaded directly.
func extractDocuments(ctx context.Context, log zerolog.Logger, db database.Datastore, licenseRegistry licenses.Registry) []domain.CatalogRecord {
	if documentsFileName == "" {
		return nil
	}

	file, err := os.Open(documentsFileName)
	if err != nil {
		log.Fatal().Msgf("failed to open documents file %s: %s", documentsFileName, err.Error())
	}
	defer file.Close()

	documents := []harvest.Document{}
	if err := json.NewDecoder(file).Decode(&documents); err != nil {
		log.Fatal().Msgf("failed to parse documents file: %s", err.Error())
	}

	sourceConfig := loadSourceConfig(log)

	extractor, err := harvest.NewExtractor(sourceConfig, db, licenseRegistry, log)
	if err != nil {
		log.Fatal().Msgf("failed to set up extractor: %s", err.Error())
	}

	records := make([]domain.CatalogRecord, 0, len(documents))
	for i := range documents {
		rec, err := extractor.Extract(ctx, &documents[i])
		if err != nil {
			log.Error().Err(err).Msgf("failed to extract document %s", documents[i].GUID)
			continue
		}
		records = append(records, *rec)
	}

	log.Info().Msgf("extracted %d records from %d harvested documents", len(records), len(documents))

	return records
}

func loadSourceConfig(log zerolog.Logger) *harvest.SourceConfig {
	if sourceConfigFileName == "" {
		return harvest.DefaultSourceConfig()
	}

	file, err := os.Open(sourceConfigFileName)
	if err != nil {
		log.Fatal().Msgf("failed to open source configuration %s: %s", sourceConfigFileName, err.Error())
	}
	defer file.Close()

	cfg, err := harvest.LoadSourceConfig(file)
	if err != nil {
		log.Fatal().Msgf("failed to load source configuration: %s", err.Error())
	}

	return cfg
}
