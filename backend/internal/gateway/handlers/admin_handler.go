package handlers

import (
	"net/http"

	"studysync/backend/internal/admin"
	"studysync/backend/internal/gateway/util"
	"studysync/backend/internal/pipeline"
	"studysync/backend/internal/shared"
)

// AdminHandler serves the /students and /faculty rosters.
type AdminHandler struct {
	Admin *admin.AdminService
}

// -- Request Structs --

type RESTAttendanceRequest struct {
	AttendancePercentage *float64 `json:"attendancePercentage"`
}

type RESTSalaryRequest struct {
	MonthlySalary *float64 `json:"monthlySalary"`
}

// -- Students --

// ListStudents handles GET /students
// Query Params: search, gradeLevel, status, sort (name|cgpa|credits|attendance)
func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sortKey := q.Get("sort")
	if sortKey != "" && !pipeline.IsStudentSortKey(sortKey) {
		util.WriteJSONError(w, http.StatusBadRequest, "sort must be one of name, cgpa, credits, attendance")
		return
	}
	filter := pipeline.StudentFilter{
		Search:     q.Get("search"),
		GradeLevel: q.Get("gradeLevel"),
		Status:     q.Get("status"),
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	students, err := h.Admin.ListStudents(ctx, filter, sortKey)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, students)
}

// GetStudent handles GET /students/{id}
func (h *AdminHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	st, err := h.Admin.GetStudent(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, st)
}

// CreateStudent handles POST /students
func (h *AdminHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var reqBody shared.Student
	if !decodeBody(w, r, &reqBody) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	created, err := h.Admin.CreateStudent(ctx, reqBody)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, created)
}

// UpdateStudent handles PUT /students/{id}
func (h *AdminHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	existing, err := h.Admin.GetStudent(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	if !mergeBody(w, r, &existing) {
		return
	}

	updated, err := h.Admin.UpdateStudent(ctx, id, existing)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// DeleteStudent handles DELETE /students/{id}
func (h *AdminHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.Admin.DeleteStudent(ctx, id); err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Student deleted",
	})
}

// UpdateAttendance handles PUT /students/{id}/attendance
func (h *AdminHandler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var reqBody RESTAttendanceRequest
	if !decodeBody(w, r, &reqBody) {
		return
	}
	if reqBody.AttendancePercentage == nil {
		util.WriteJSONError(w, http.StatusBadRequest, "attendancePercentage is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	updated, err := h.Admin.UpdateAttendance(ctx, id, *reqBody.AttendancePercentage)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// -- Faculty --

// ListFaculty handles GET /faculty
// Query Params: search, department, employmentStatus
func (h *AdminHandler) ListFaculty(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := pipeline.FacultyFilter{
		Search:           q.Get("search"),
		Department:       q.Get("department"),
		EmploymentStatus: q.Get("employmentStatus"),
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	faculty, err := h.Admin.ListFaculty(ctx, filter)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, faculty)
}

// GetFaculty handles GET /faculty/{id}
func (h *AdminHandler) GetFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	f, err := h.Admin.GetFaculty(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, f)
}

// CreateFaculty handles POST /faculty
func (h *AdminHandler) CreateFaculty(w http.ResponseWriter, r *http.Request) {
	var reqBody shared.Faculty
	if !decodeBody(w, r, &reqBody) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	created, err := h.Admin.CreateFaculty(ctx, reqBody)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, created)
}

// UpdateFaculty handles PUT /faculty/{id}
func (h *AdminHandler) UpdateFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	existing, err := h.Admin.GetFaculty(ctx, id)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	if !mergeBody(w, r, &existing) {
		return
	}

	updated, err := h.Admin.UpdateFaculty(ctx, id, existing)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}

// DeleteFaculty handles DELETE /faculty/{id}
func (h *AdminHandler) DeleteFaculty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.Admin.DeleteFaculty(ctx, id); err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Faculty member deleted",
	})
}

// UpdateSalary handles PUT /faculty/{id}/salary
func (h *AdminHandler) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var reqBody RESTSalaryRequest
	if !decodeBody(w, r, &reqBody) {
		return
	}
	if reqBody.MonthlySalary == nil {
		util.WriteJSONError(w, http.StatusBadRequest, "monthlySalary is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	updated, err := h.Admin.UpdateSalary(ctx, id, *reqBody.MonthlySalary)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, updated)
}
