package tests

import (
	"fmt"
	"net/http"
	"testing"

	"studysync/backend/internal/analytics"
	"studysync/backend/internal/shared"
)

func TestGateway_Students(t *testing.T) {
	env := setupGatewayTestEnv(t)

	var ids []int64
	for _, body := range []map[string]interface{}{
		{"studentName": "Grace Hopper", "cgpa": 3.2, "gradeLevel": "Senior", "enrollmentStatus": "Active", "completedCredits": 110, "attendancePercentage": 90},
		{"studentName": "alan Turing", "cgpa": 3.9, "gradeLevel": "Junior", "enrollmentStatus": "Active", "completedCredits": 80, "attendancePercentage": 70},
		{"studentName": "Ada Lovelace", "cgpa": 3.5, "gradeLevel": "Senior", "enrollmentStatus": "Graduated", "studentEmail": "ada@uni.edu"},
	} {
		rr := env.do(t, "POST", "/api/students", body)
		expectStatus(t, rr, http.StatusCreated)
		var st shared.Student
		decode(t, rr, &st)
		ids = append(ids, st.ID)
	}

	t.Run("Invalid", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/students", map[string]interface{}{"studentName": "Bad", "cgpa": 5, "studentEmail": "nope"})
		expectStatus(t, rr, http.StatusBadRequest)
		if resp := decode(t, rr, nil); len(resp.Errors) != 2 {
			t.Errorf("Expected 2 field errors, got %+v", resp.Errors)
		}
	})

	t.Run("Sort by name ignores case", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/students?sort=name", nil)
		expectStatus(t, rr, http.StatusOK)
		var list []shared.Student
		decode(t, rr, &list)
		if len(list) != 3 || list[0].Name != "Ada Lovelace" || list[1].Name != "alan Turing" {
			t.Errorf("Unexpected order: %+v", list)
		}
		expectStatus(t, env.do(t, "GET", "/api/students?sort=age", nil), http.StatusBadRequest)
	})

	t.Run("Filter", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/students?gradeLevel=Senior&status=Active&search=grace", nil)
		expectStatus(t, rr, http.StatusOK)
		var list []shared.Student
		decode(t, rr, &list)
		if len(list) != 1 || list[0].ID != ids[0] {
			t.Errorf("Unexpected filter result: %+v", list)
		}
	})

	t.Run("Attendance", func(t *testing.T) {
		path := fmt.Sprintf("/api/students/%d/attendance", ids[1])
		expectStatus(t, env.do(t, "PUT", path, map[string]interface{}{"attendancePercentage": 95}), http.StatusOK)
		expectStatus(t, env.do(t, "PUT", path, map[string]interface{}{"attendancePercentage": 101}), http.StatusBadRequest)
		expectStatus(t, env.do(t, "PUT", path, map[string]interface{}{}), http.StatusBadRequest)
	})

	t.Run("Stats", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/stats/students", nil)
		expectStatus(t, rr, http.StatusOK)
		var s analytics.StudentStats
		decode(t, rr, &s)
		if s.Total != 3 || s.Active != 2 || s.AverageCGPA != "3.53" || s.TotalCredits != 190 {
			t.Errorf("Unexpected student stats: %+v", s)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/students/%d", ids[2])
		expectStatus(t, env.do(t, "DELETE", path, nil), http.StatusOK)
		expectStatus(t, env.do(t, "GET", path, nil), http.StatusNotFound)
	})
}

func TestGateway_Faculty(t *testing.T) {
	env := setupGatewayTestEnv(t)

	rr := env.do(t, "POST", "/api/faculty", map[string]interface{}{
		"facultyName":         "Marie Curie",
		"department":          "Science",
		"subjectsTaught":      []string{"Physics", "Chemistry"},
		"weeklyTeachingHours": 12,
		"contactPhone":        "+1 (555) 123-4567",
	})
	expectStatus(t, rr, http.StatusCreated)
	var f shared.Faculty
	decode(t, rr, &f)
	if f.EmploymentStatus != shared.EmploymentActive {
		t.Errorf("Expected default employment status, got %q", f.EmploymentStatus)
	}
	path := fmt.Sprintf("/api/faculty/%d", f.ID)

	t.Run("Invalid", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/faculty", map[string]interface{}{
			"facultyName": "Bad", "contactPhone": "12", "employmentStatus": "Fired",
		})
		expectStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("Update", func(t *testing.T) {
		rr := env.do(t, "PUT", path, map[string]interface{}{"employmentStatus": "On Leave"})
		expectStatus(t, rr, http.StatusOK)
		var updated shared.Faculty
		decode(t, rr, &updated)
		if updated.EmploymentStatus != shared.EmploymentOnLeave || updated.Name != "Marie Curie" {
			t.Errorf("Unexpected faculty after update: %+v", updated)
		}
	})

	t.Run("Salary", func(t *testing.T) {
		expectStatus(t, env.do(t, "PUT", path+"/salary", map[string]interface{}{"monthlySalary": 8000}), http.StatusOK)
		expectStatus(t, env.do(t, "PUT", path+"/salary", map[string]interface{}{"monthlySalary": -5}), http.StatusBadRequest)
	})

	t.Run("List", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/faculty?search=chem&department=Science", nil)
		expectStatus(t, rr, http.StatusOK)
		var list []shared.Faculty
		decode(t, rr, &list)
		if len(list) != 1 {
			t.Errorf("Expected 1 faculty member, got %d", len(list))
		}

		rr = env.do(t, "GET", "/api/faculty?employmentStatus=Retired", nil)
		expectStatus(t, rr, http.StatusOK)
		list = nil
		decode(t, rr, &list)
		if len(list) != 0 {
			t.Errorf("Expected none, got %d", len(list))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		expectStatus(t, env.do(t, "DELETE", path, nil), http.StatusOK)
		expectStatus(t, env.do(t, "GET", path, nil), http.StatusNotFound)
	})
}
