package handlers

import (
	"net/http"

	"studysync/backend/internal/assignment"
	"studysync/backend/internal/course"
	"studysync/backend/internal/gateway/util"
	"studysync/backend/internal/pipeline"
	"studysync/backend/internal/shared"
)

// CourseHandler serves /courses
type CourseHandler struct {
	Courses     *course.CourseService
	Assignments *assignment.Service
}

type RESTCourseGradeRequest struct {
	Grade *float64 `json:"grade"`
}

// ListCourses handles GET /courses
// Query Params: search, semester
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := pipeline.CourseFilter{Search: q.Get("search"), Semester: q.Get("semester")}

	ctx, cancel := requestContext(r)
	defer cancel()

	courses, err := h.Courses.ListCourses(ctx, filter)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{id}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	c, err := h.Courses.GetCourse(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, c)
}

// CreateCourse handles POST /courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var reqBody shared.Course
	if !decodeBody(w, r, &reqBody) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	created, err := h.Courses.CreateCourse(ctx, reqBody)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, created)
}

// UpdateCourse handles PUT /courses/{id}
// Fields missing from the body keep their stored values.
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	existing, err := h.Courses.GetCourse(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	merged := existing.Course
	if !mergeBody(w, r, &merged) {
		return
	}

	updated, err := h.Courses.UpdateCourse(ctx, id, merged)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// DeleteCourse handles DELETE /courses/{id}
// The course's assignments are deleted with it.
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.Courses.DeleteCourse(ctx, id); err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Course deleted",
	})
}

// UpdateCourseGrade handles PUT /courses/{id}/grade
func (h *CourseHandler) UpdateCourseGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var reqBody RESTCourseGradeRequest
	if !decodeBody(w, r, &reqBody) {
		return
	}
	if reqBody.Grade == nil {
		util.WriteJSONError(w, http.StatusBadRequest, "grade is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	updated, err := h.Courses.UpdateGrade(ctx, id, *reqBody.Grade)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// RecalculateGrade handles POST /courses/{id}/recalculate
func (h *CourseHandler) RecalculateGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	updated, err := h.Courses.RecalculateCourseGrade(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// ListCourseGrades handles GET /courses/{id}/grades
func (h *CourseHandler) ListCourseGrades(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err := h.Courses.GetCourse(ctx, id); err != nil {
		util.HandleError(w, err)
		return
	}
	grades, err := h.Courses.ListGrades(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, grades)
}

// ListCourseAssignments handles GET /courses/{id}/assignments
func (h *CourseHandler) ListCourseAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err := h.Courses.GetCourse(ctx, id); err != nil {
		util.HandleError(w, err)
		return
	}
	items, err := h.Assignments.ByCourse(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, items)
}
