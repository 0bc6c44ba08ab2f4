package handlers

import (
	"net/http"

	"studysync/backend/internal/analytics"
	"studysync/backend/internal/course"
	"studysync/backend/internal/gateway/util"
	"studysync/backend/internal/shared"
)

// GradeHandler serves /grades: individual grade entries and the grades overview.
type GradeHandler struct {
	Courses   *course.CourseService
	Analytics *analytics.Service
}

// ListGrades handles GET /grades
// Query Params: courseId (required)
func (h *GradeHandler) ListGrades(w http.ResponseWriter, r *http.Request) {
	courseID, ok := queryInt64(w, r, "courseId")
	if !ok {
		return
	}
	if courseID == 0 {
		util.WriteJSONError(w, http.StatusBadRequest, "courseId is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	grades, err := h.Courses.ListGrades(ctx, courseID)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, grades)
}

// GetGrade handles GET /grades/{id}
func (h *GradeHandler) GetGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	g, err := h.Courses.GetGrade(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, g)
}

// AddGrade handles POST /grades
// The category must be one of the course's grade categories.
func (h *GradeHandler) AddGrade(w http.ResponseWriter, r *http.Request) {
	var reqBody shared.GradeEntry
	if !decodeBody(w, r, &reqBody) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	created, err := h.Courses.AddGrade(ctx, reqBody)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, created)
}

// UpdateGrade handles PUT /grades/{id}
func (h *GradeHandler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	existing, err := h.Courses.GetGrade(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	if !mergeBody(w, r, &existing) {
		return
	}

	updated, err := h.Courses.UpdateGradeEntry(ctx, id, existing)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// DeleteGrade handles DELETE /grades/{id}
func (h *GradeHandler) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.Courses.DeleteGrade(ctx, id); err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Grade deleted",
	})
}

// Summary handles GET /grades/summary
// Query Params: courseId (optional, narrows the per-course breakdown)
func (h *GradeHandler) Summary(w http.ResponseWriter, r *http.Request) {
	courseID, ok := queryInt64(w, r, "courseId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	summary, err := h.Analytics.GradesSummary(ctx, courseID)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, summary)
}
