package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"benchmate/internal/apperr"
	"benchmate/internal/resources"
)

func resourceID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound("Resource not found")
	}
	return id, nil
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func (a *API) handleUploadResource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		FileURL      string `json:"fileUrl"`
		University   string `json:"university"`
		Department   string `json:"department"`
		Semester     int    `json:"semester"`
		CourseCode   string `json:"courseCode"`
		CourseName   string `json:"courseName"`
		ResourceType string `json:"resourceType"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	resource, uploadURL, err := a.resources.Upload(r.Context(), userID(r), resources.UploadInput{
		Title:        req.Title,
		Description:  req.Description,
		FileURL:      req.FileURL,
		University:   req.University,
		Department:   req.Department,
		Semester:     req.Semester,
		CourseCode:   req.CourseCode,
		CourseName:   req.CourseName,
		ResourceType: req.ResourceType,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	payload := map[string]any{"resource": resource}
	if uploadURL != "" {
		payload["uploadUrl"] = uploadURL
	}
	respond(w, http.StatusCreated, "", payload)
}

func (a *API) handleListResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	views, err := a.resources.List(r.Context(), resources.ListOptions{
		University: q.Get("university"),
		Department: q.Get("department"),
		Search:     q.Get("search"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "", views)
}

func (a *API) handleTrendingResources(w http.ResponseWriter, r *http.Request) {
	views, err := a.resources.Trending(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", views)
}

func (a *API) handleMyUploads(w http.ResponseWriter, r *http.Request) {
	views, err := a.resources.MyUploads(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", views)
}

func (a *API) handleGetResource(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := a.resources.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "", detail)
}

func (a *API) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		FileURL      *string `json:"fileUrl"`
		University   *string `json:"university"`
		Department   *string `json:"department"`
		Semester     *int    `json:"semester"`
		CourseCode   *string `json:"courseCode"`
		CourseName   *string `json:"courseName"`
		ResourceType *string `json:"resourceType"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	resource, err := a.resources.Update(r.Context(), userID(r), id, resources.UpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		FileURL:      req.FileURL,
		University:   req.University,
		Department:   req.Department,
		Semester:     req.Semester,
		CourseCode:   req.CourseCode,
		CourseName:   req.CourseName,
		ResourceType: req.ResourceType,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Updated", resource)
}

func (a *API) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := a.resources.Delete(r.Context(), userID(r), id); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Deleted successfully", nil)
}

func (a *API) handleToggleHype(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	hyped, err := a.resources.ToggleHype(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if hyped {
		respond(w, http.StatusCreated, "Hyped", nil)
		return
	}
	respond(w, http.StatusOK, "Unhyped", nil)
}

func (a *API) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	comment, err := a.resources.AddComment(r.Context(), userID(r), id, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "", comment)
}

func (a *API) handleListComments(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	comments, err := a.resources.Comments(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "", comments)
}

func (a *API) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, apperr.NotFound("Comment not found"))
		return
	}

	if err := a.resources.DeleteComment(r.Context(), userID(r), id); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Comment deleted", nil)
}

func (a *API) handleDownloadResource(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	url, err := a.resources.Download(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Download recorded", map[string]any{"fileUrl": url})
}

func (a *API) handleSearchResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	views, pagination, err := a.resources.Search(r.Context(), resources.SearchOptions{
		Query:      q.Get("query"),
		Type:       q.Get("type"),
		University: q.Get("university"),
		Department: q.Get("department"),
		Semester:   queryInt(r, "semester"),
		CourseCode: q.Get("courseCode"),
		CourseName: q.Get("courseName"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       views,
		"pagination": pagination,
	})
}
