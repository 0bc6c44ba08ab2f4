package handlers

import (
	"net/http"

	"studysync/backend/internal/assignment"
	"studysync/backend/internal/gateway/util"
	"studysync/backend/internal/pipeline"
	"studysync/backend/internal/shared"
)

// AssignmentHandler serves /assignments
type AssignmentHandler struct {
	Assignments *assignment.Service
}

type RESTStatusRequest struct {
	Status string `json:"status"`
}

// ListAssignments handles GET /assignments
// Query Params: search, status, courseId, priority
func (h *AssignmentHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	courseID, ok := queryInt64(w, r, "courseId")
	if !ok {
		return
	}
	filter := pipeline.AssignmentFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		CourseID: courseID,
		Priority: q.Get("priority"),
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := h.Assignments.List(ctx, filter)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, items)
}

// GetAssignment handles GET /assignments/{id}
func (h *AssignmentHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	a, err := h.Assignments.Get(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, a)
}

// CreateAssignment handles POST /assignments
func (h *AssignmentHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var reqBody shared.Assignment
	if !decodeBody(w, r, &reqBody) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	created, err := h.Assignments.Create(ctx, reqBody)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, created)
}

// UpdateAssignment handles PUT /assignments/{id}
func (h *AssignmentHandler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	existing, err := h.Assignments.Get(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	merged := existing.Assignment
	if !mergeBody(w, r, &merged) {
		return
	}

	updated, err := h.Assignments.Update(ctx, id, merged)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// DeleteAssignment handles DELETE /assignments/{id}
func (h *AssignmentHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.Assignments.Delete(ctx, id); err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Assignment deleted",
	})
}

// UpdateStatus handles PATCH /assignments/{id}/status
func (h *AssignmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var reqBody RESTStatusRequest
	if !decodeBody(w, r, &reqBody) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	updated, err := h.Assignments.UpdateStatus(ctx, id, reqBody.Status)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// Upcoming handles GET /assignments/upcoming
// Query Params: days (default 7)
func (h *AssignmentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days, err := util.QueryInt(r, "days", assignment.DefaultUpcomingDays)
	if err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := h.Assignments.Upcoming(ctx, days)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, items)
}

// Today handles GET /assignments/today
func (h *AssignmentHandler) Today(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := h.Assignments.Today(ctx)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, items)
}
