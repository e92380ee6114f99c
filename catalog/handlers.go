package catalog

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"velour/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

var fleetPicDir = "./static/fleetpic"

func GetFleetHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"fleet": Fleet(ctx)})
}

// UploadImageHandler stores an admin-uploaded vehicle photo plus a 300px
// thumbnail and returns the static reference to put into the fleet entry.
func UploadImageHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file missing")
		return
	}
	defer file.Close()

	ext := filepath.Ext(handler.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	id := utils.GetUUID()
	filename := id + ".jpg"
	thumbDir := filepath.Join(fleetPicDir, "thumb")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save file")
		return
	}

	if err := imaging.Save(img, filepath.Join(fleetPicDir, filename)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save file")
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, filename)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save thumbnail")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"imageUrl": "/static/fleetpic/" + filename,
		"thumbUrl": "/static/fleetpic/thumb/" + filename,
	})
}
