package http

import "net/http"

func (h *Handler) listCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := h.service.ListCenters(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "list_centers", err)
		return
	}
	writeSuccess(w, http.StatusOK, centers)
}

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context(), r.URL.Query().Get("center_id"))
	if err != nil {
		writeMappedError(r.Context(), w, "list_courses", err)
		return
	}
	writeSuccess(w, http.StatusOK, courses)
}
