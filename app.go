package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/urfave/negroni"
	"go.uber.org/zap"
)

type App struct {
	DB      *WebsiteDB
	Fetcher *pageFetcher
	Icons   *IconResolver
	Log     *zap.SugaredLogger
}

func NewApp(cfg Config, log *zap.SugaredLogger) (*App, error) {
	db, err := newDB(cfg.DBFile)
	if err != nil {
		return nil, err
	}

	fetcher := newPageFetcher(cfg.Fetch)

	return &App{
		DB:      &WebsiteDB{db},
		Fetcher: fetcher,
		Icons:   newIconResolver(fetcher, cfg, log),
		Log:     log,
	}, nil
}

// Router wires the API. Mutating routes sit behind basic auth; reads,
// generated icons and metrics stay open.
func (app *App) Router(cfg Config) http.Handler {
	r := mux.NewRouter()

	authed := func(h http.HandlerFunc) http.Handler {
		return negroni.New(
			negroni.HandlerFunc(basicAuth(cfg)),
			negroni.Wrap(h),
		)
	}

	r.HandleFunc("/api/websites", app.HandleListWebsites).Methods(http.MethodGet)
	r.Handle("/api/websites", authed(app.HandleCreateWebsite)).Methods(http.MethodPost)
	r.Handle("/api/websites/{id}", authed(app.HandleUpdateWebsite)).Methods(http.MethodPut)
	r.Handle("/api/websites/{id}", authed(app.HandleDeleteWebsite)).Methods(http.MethodDelete)
	r.Handle("/api/preview", authed(app.HandlePreview)).Methods(http.MethodGet)

	r.Handle("/metrics", metricsHandler())
	r.PathPrefix("/icons/").Handler(
		http.StripPrefix("/icons/", http.FileServer(http.Dir(cfg.IconDir))))

	n := negroni.New(negroni.NewRecovery())
	n.Use(metricsMiddleware())
	n.UseHandler(r)

	return n
}
