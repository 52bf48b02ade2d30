package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

type createBookmarkRequest struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type listBookmarksResponse struct {
	Data  []domain.Bookmark `json:"data"`
	Count int               `json:"count"`
}

// ListBookmarks returns every stored bookmark plus a total count.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Catalog.List(r.Context())
		if err != nil {
			d.Logger.Error("failed to list bookmarks", logger.Error(err))
			writeDetail(w, http.StatusInternalServerError, "storage unavailable")
			return
		}

		if bookmarks == nil {
			bookmarks = []domain.Bookmark{}
		}
		writeJSON(w, http.StatusOK, listBookmarksResponse{
			Data:  bookmarks,
			Count: len(bookmarks),
		})
	}
}

// CreateBookmark validates the request body and stores a new bookmark.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
			return
		}

		created, err := d.Catalog.Create(r.Context(), req.Label, req.URL)
		if err != nil {
			var dup *domain.DuplicateURLError
			switch {
			case errors.Is(err, domain.ErrInvalidURL):
				writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			case errors.As(err, &dup):
				d.Logger.Info("duplicate bookmark rejected",
					logger.Int64("existing_id", dup.Existing.ID),
					logger.String("url", dup.Existing.URL))
				writeDetail(w, http.StatusConflict,
					fmt.Sprintf("[Server Error] Bookmark with label: %s already exists for %s",
						dup.Existing.Label, dup.Existing.URL))
			default:
				d.Logger.Error("failed to create bookmark", logger.Error(err))
				writeDetail(w, http.StatusInternalServerError, "storage unavailable")
			}
			return
		}

		d.Logger.Info("bookmark created",
			logger.Int64("id", created.ID),
			logger.String("url", created.URL))
		writeJSON(w, http.StatusOK, created)
	}
}

// DeleteBookmark removes a bookmark by id and confirms what was removed.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "bookmark id must be an integer")
			return
		}

		removed, err := d.Catalog.Delete(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeDetail(w, http.StatusNotFound, "Bookmark not found")
				return
			}
			d.Logger.Error("failed to delete bookmark",
				logger.Int64("id", id),
				logger.Error(err))
			writeDetail(w, http.StatusInternalServerError, "storage unavailable")
			return
		}

		d.Logger.Info("bookmark deleted",
			logger.Int64("id", removed.ID),
			logger.String("url", removed.URL))

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Bookmark Deleted: ID: %d\tlabel: %s\turl: %s",
			removed.ID, removed.Label, removed.URL)
	}
}
