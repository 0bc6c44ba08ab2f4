package handlers

import (
	"net/http"
	"time"

	"studysync/backend/internal/analytics"
	"studysync/backend/internal/gateway/util"
)

// AnalyticsHandler serves the dashboard, calendar and stats views.
type AnalyticsHandler struct {
	Analytics *analytics.Service
}

// Dashboard handles GET /dashboard
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	d, err := h.Analytics.Dashboard(ctx, h.Analytics.Now())
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, d)
}

// Calendar handles GET /calendar
// Query Params: month (YYYY-MM, default current), view (month|week), date
// (YYYY-MM-DD, anchors the week view; defaults to the first of month)
func (h *AnalyticsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := h.Analytics.Now()
	ref := now

	if m := q.Get("month"); m != "" {
		parsed, err := time.ParseInLocation("2006-01", m, now.Location())
		if err != nil {
			util.WriteJSONError(w, http.StatusBadRequest, "month must be formatted YYYY-MM")
			return
		}
		ref = parsed
		if parsed.Year() == now.Year() && parsed.Month() == now.Month() {
			ref = now
		}
	}
	if d := q.Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, now.Location())
		if err != nil {
			util.WriteJSONError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	view, err := h.Analytics.CalendarMonth(ctx, ref, now, q.Get("view"))
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, view)
}

// AssignmentStats handles GET /stats/assignments
func (h *AnalyticsHandler) AssignmentStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	stats, err := h.Analytics.AssignmentStats(ctx, h.Analytics.Now())
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, stats)
}

// StudentStats handles GET /stats/students
func (h *AnalyticsHandler) StudentStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	stats, err := h.Analytics.StudentStats(ctx)
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, stats)
}

// CourseStats handles GET /stats/courses
func (h *AnalyticsHandler) CourseStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	stats, err := h.Analytics.CourseStats(ctx, h.Analytics.Now())
	if err != nil {
		util.HandleError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, stats)
}
