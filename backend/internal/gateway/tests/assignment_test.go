package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"studysync/backend/internal/assignment"
	"studysync/backend/internal/shared"
)

func TestGateway_Assignment(t *testing.T) {
	env := setupGatewayTestEnv(t)

	create := func(t *testing.T, body map[string]interface{}) assignment.View {
		t.Helper()
		rr := env.do(t, "POST", "/api/assignments", body)
		expectStatus(t, rr, http.StatusCreated)
		var v assignment.View
		decode(t, rr, &v)
		return v
	}

	essay := create(t, map[string]interface{}{"title": "Essay", "courseId": 1, "dueDate": testNow.Add(-24 * time.Hour)})
	lab := create(t, map[string]interface{}{"title": "Lab", "courseId": 2, "dueDate": testNow.Add(5 * time.Hour), "priority": "high"})
	create(t, map[string]interface{}{"title": "Project", "courseId": 1, "dueDate": testNow.Add(10 * 24 * time.Hour)})

	t.Run("Defaults and derived status", func(t *testing.T) {
		if essay.Priority != shared.PriorityMedium || essay.Status != shared.StatusPending {
			t.Errorf("Expected defaults, got priority=%s status=%s", essay.Priority, essay.Status)
		}
		if essay.DerivedStatus != shared.StatusOverdue {
			t.Errorf("Expected overdue, got %s", essay.DerivedStatus)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		rr := env.do(t, "POST", "/api/assignments", map[string]interface{}{"title": "X", "courseId": 1, "dueDate": testNow, "priority": "urgent"})
		expectStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("List with filters", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/assignments", nil)
		expectStatus(t, rr, http.StatusOK)
		var all []assignment.View
		decode(t, rr, &all)
		if len(all) != 3 || all[0].Title != "Essay" || all[1].Title != "Lab" {
			t.Errorf("Unexpected order: %+v", all)
		}

		rr = env.do(t, "GET", "/api/assignments?courseId=1&status=pending", nil)
		expectStatus(t, rr, http.StatusOK)
		var pending []assignment.View
		decode(t, rr, &pending)
		if len(pending) != 1 || pending[0].Title != "Project" {
			t.Errorf("Unexpected filter result: %+v", pending)
		}

		expectStatus(t, env.do(t, "GET", "/api/assignments?courseId=x", nil), http.StatusBadRequest)
	})

	t.Run("Upcoming and Today", func(t *testing.T) {
		rr := env.do(t, "GET", "/api/assignments/upcoming", nil)
		expectStatus(t, rr, http.StatusOK)
		var up []assignment.View
		decode(t, rr, &up)
		if len(up) != 1 || up[0].ID != lab.ID {
			t.Errorf("Expected only the lab, got %+v", up)
		}

		rr = env.do(t, "GET", "/api/assignments/upcoming?days=14", nil)
		expectStatus(t, rr, http.StatusOK)
		up = nil
		decode(t, rr, &up)
		if len(up) != 2 {
			t.Errorf("Expected 2 upcoming, got %d", len(up))
		}

		rr = env.do(t, "GET", "/api/assignments/today", nil)
		expectStatus(t, rr, http.StatusOK)
		var today []assignment.View
		decode(t, rr, &today)
		if len(today) != 1 || today[0].Title != "Lab" {
			t.Errorf("Expected the lab today, got %+v", today)
		}
	})

	t.Run("Status", func(t *testing.T) {
		path := fmt.Sprintf("/api/assignments/%d/status", essay.ID)
		rr := env.do(t, "PATCH", path, map[string]string{"status": "completed"})
		expectStatus(t, rr, http.StatusOK)
		var v assignment.View
		decode(t, rr, &v)
		if v.DerivedStatus != shared.StatusCompleted {
			t.Errorf("Expected completed, got %s", v.DerivedStatus)
		}

		expectStatus(t, env.do(t, "PATCH", path, map[string]string{"status": "archived"}), http.StatusBadRequest)
		expectStatus(t, env.do(t, "PATCH", "/api/assignments/999/status", map[string]string{"status": "completed"}), http.StatusNotFound)
	})

	t.Run("Update keeps unspecified fields", func(t *testing.T) {
		path := fmt.Sprintf("/api/assignments/%d", lab.ID)
		rr := env.do(t, "PUT", path, map[string]interface{}{"notes": "bring goggles"})
		expectStatus(t, rr, http.StatusOK)
		var v assignment.View
		decode(t, rr, &v)
		if v.Title != "Lab" || v.Priority != shared.PriorityHigh || v.Notes != "bring goggles" {
			t.Errorf("Unexpected assignment after update: %+v", v)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/assignments/%d", lab.ID)
		expectStatus(t, env.do(t, "DELETE", path, nil), http.StatusOK)
		expectStatus(t, env.do(t, "GET", path, nil), http.StatusNotFound)
	})
}
