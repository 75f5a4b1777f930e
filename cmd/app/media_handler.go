package main

import (
	"errors"
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
	"github.com/mirrelia/quillpost/internal/mediaservice"
)

func (app *application) uploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxFormMemory)
	if err != nil {
		app.badRequestErrorResponse(w, r, errors.New("expected a multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.badRequestErrorResponse(w, r, errors.New("file is required"))
		return
	}
	defer file.Close()

	session := app.getSessionContext(r)

	relPath, err := app.mediaService.Store().Save(session.UserID, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, mediaservice.ErrTypeNotAllowed), errors.Is(err, mediaservice.ErrInvalidName):
			app.badRequestErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	env := envelope{
		"message": "file uploaded successfully",
		"url":     path.Join("/uploads", relPath),
	}

	if app.mediaService.RemoteEnabled() {
		stored, err := app.mediaService.Store().Open(relPath)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		defer stored.Close()

		result, err := app.mediaService.Uploader().Upload(r.Context(), header.Filename, stored)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		env["media_url"] = result.URL
	}

	err = app.writeJSON(w, http.StatusCreated, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) serveUploadHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	abs, err := app.mediaService.Store().Resolve(params.ByName("filepath"))
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	http.ServeFile(w, r, abs)
}
