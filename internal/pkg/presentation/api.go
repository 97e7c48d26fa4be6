package presentation

import (
	"bytes"
	"compress/flate"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-dcatapit/api")

type API interface {
	Start(port string) error
}

type catalogAPI struct {
	router chi.Router
	log    zerolog.Logger
}

//NewAPI sets up the catalog API, serving a pre-rendered DCAT-AP_IT export.
func NewAPI(r chi.Router, ctx context.Context, dcatResponse *bytes.Buffer) API {
	return newCatalogAPI(r, ctx, dcatResponse)
}

func newCatalogAPI(r chi.Router, ctx context.Context, dcatResponse *bytes.Buffer) *catalogAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"text/csv", "application/json", "application/xml", "application/rdf+xml", "text/turtle",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("api-dcatapit", otelchi.WithChiRoutes(r)))

	a := &catalogAPI{
		router: r,
		log:    log,
	}

	a.addProbeHandlers(r)

	a.router.Get("/api/datasets/dcat", a.newRetrieveDatasetsHandler(log, dcatResponse))

	return a
}

func (a *catalogAPI) Start(port string) error {
	a.log.Info().Msgf("Starting api-dcatapit on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *catalogAPI) addProbeHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (a *catalogAPI) newRetrieveDatasetsHandler(log zerolog.Logger, dcatResponse *bytes.Buffer) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		_, span := tracer.Start(r.Context(), "retrieve-datasets")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		w.Header().Add("Content-Type", "text/turtle")
		_, err = w.Write(dcatResponse.Bytes())
	})
}
