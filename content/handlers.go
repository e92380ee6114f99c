package content

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"velour/db"
	"velour/feeds"
	"velour/models"
	"velour/mq"
	"velour/utils"

	"github.com/julienschmidt/httprouter"
)

func GetContentHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := GetContent(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load site content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"content": doc})
}

type saveRequest struct {
	Content      models.SiteContent `json:"content"`
	FailedImages []string           `json:"failedImages,omitempty"`
}

// SaveContentHandler validates the whole draft and either blocks the save
// naming every offending fleet entry, or applies the atomic overwrite+version
// write and notifies both the content and version feeds.
func SaveContentHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := ValidateFleet(req.Content.Fleet, req.FailedImages); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
			"error":   "Fleet validation failed; nothing was saved",
			"entries": errs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ver, err := SaveContent(ctx, req.Content)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Content storage is not configured")
			return
		}
		log.Printf("content: save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save content")
		return
	}

	mq.Emit(feeds.TopicContent, "saved", ver.ID)
	mq.Emit(feeds.TopicVersions, "appended", ver.ID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"version": ver})
}

func ListVersionsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	versions, err := ListVersions(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Content storage is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load versions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"versions": versions})
}

func RestoreVersionHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ver, err := RestoreContent(ctx, ps.ByName("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Content storage is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	mq.Emit(feeds.TopicContent, "restored", ver.ID)
	mq.Emit(feeds.TopicVersions, "appended", ver.ID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"version": ver})
}
