package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/otiai10/opengraph/v2"
)

const (
	defaultSkip  = 0
	defaultLimit = 10
)

func (app *App) HandleCreateWebsite(w http.ResponseWriter, r *http.Request) {
	var in WebsiteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.URL == "" {
		writeAPIError(w, http.StatusBadRequest, "url is missing")
		return
	}
	if in.Name == "" {
		writeAPIError(w, http.StatusBadRequest, "name is missing")
		return
	}

	// Enrichment is best-effort; only the avatar file write can fail here.
	iconURL, err := app.Icons.Resolve(r.Context(), in.URL)
	if err != nil {
		app.Log.Errorw("error while saving icon", "url", in.URL, "error", err)
		writeAPIError(w, http.StatusInternalServerError, "could not store icon")
		return
	}

	description := app.Fetcher.Description(r.Context(), in.URL)

	id, err := app.DB.InsertWebsite(Website{
		Name:        in.Name,
		URL:         in.URL,
		IconURL:     iconURL,
		Description: description,
		Order:       in.Order,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		app.Log.Errorw("error while inserting website", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "could not create website")
		return
	}

	site, err := app.DB.GetWebsite(id)
	if err != nil {
		app.Log.Errorw("error while reading website back", "id", id, "error", err)
		writeAPIError(w, http.StatusInternalServerError, "could not read website")
		return
	}

	writeJSON(w, http.StatusOK, site)
}

func (app *App) HandleListWebsites(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, err := queryInt(q.Get("skip"), defaultSkip)
	if err != nil || skip < 0 {
		writeAPIError(w, http.StatusBadRequest, "skip must be a non-negative integer")
		return
	}

	limit, err := queryInt(q.Get("limit"), defaultLimit)
	if err != nil || limit < 1 {
		writeAPIError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	allData := false
	if raw := q.Get("all_data"); raw != "" {
		allData, err = strconv.ParseBool(raw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "all_data must be a boolean")
			return
		}
	}

	if allData {
		sites, err := app.DB.ListWebsites()
		if err != nil {
			app.Log.Errorw("error while listing websites", "error", err)
			writeAPIError(w, http.StatusInternalServerError, "could not list websites")
			return
		}

		// In all_data mode the total is the returned row count, not a
		// separate table count.
		writeJSON(w, http.StatusOK, PagedWebsites{Data: sites, Total: len(sites)})
		return
	}

	total, err := app.DB.CountWebsites()
	if err != nil {
		app.Log.Errorw("error while counting websites", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "could not list websites")
		return
	}

	sites, err := app.DB.ListWebsitesPage(skip, limit)
	if err != nil {
		app.Log.Errorw("error while listing websites", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "could not list websites")
		return
	}

	writeJSON(w, http.StatusOK, PagedWebsites{Data: sites, Total: total})
}

func (app *App) HandleUpdateWebsite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var upd WebsiteUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := app.DB.UpdateWebsite(id, upd); err != nil {
		if errors.Is(err, errNotFound) {
			writeAPIError(w, http.StatusNotFound, "website not found")
			return
		}

		app.Log.Errorw("error while updating website", "id", id, "error", err)
		writeAPIError(w, http.StatusInternalServerError, "could not update website")
		return
	}

	site, err := app.DB.GetWebsite(id)
	if err != nil {
		app.Log.Errorw("error while reading website back", "id", id, "error", err)
		writeAPIError(w, http.StatusInternalServerError, "could not read website")
		return
	}

	writeJSON(w, http.StatusOK, site)
}

func (app *App) HandleDeleteWebsite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := app.DB.DeleteWebsite(id); err != nil {
		if errors.Is(err, errNotFound) {
			writeAPIError(w, http.StatusNotFound, "website not found")
			return
		}

		app.Log.Errorw("error while deleting website", "id", id, "error", err)
		writeAPIError(w, http.StatusInternalServerError, "could not delete website")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandlePreview fetches OpenGraph metadata for a URL so a client can prefill
// the create form before submitting.
func (app *App) HandlePreview(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeAPIError(w, http.StatusBadRequest, "url is missing")
		return
	}

	ogp, err := opengraph.Fetch(rawURL)
	if err != nil {
		writeAPIError(w, http.StatusBadGateway, fmt.Sprintf("error while fetching link: %v", err))
		return
	}
	ogp.ToAbs()

	preview := Preview{
		URL:         rawURL,
		Title:       ogp.Title,
		Description: ogp.Description,
	}
	if len(ogp.Image) > 0 {
		preview.ImageURL = ogp.Image[0].URL
	}

	writeJSON(w, http.StatusOK, preview)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	rawID, ok := mux.Vars(r)["id"]
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "id missing")
		return 0, false
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad id, got "+rawID)
		return 0, false
	}

	return id, true
}

func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	return strconv.Atoi(raw)
}
