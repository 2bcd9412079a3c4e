package controllers

import (
	"net/http"
	"time"

	"caltrack/middlewares"
	"caltrack/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{svc: svc}
}

func dateParam(c *gin.Context) (time.Time, bool) {
	v := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date")
		return time.Time{}, false
	}
	return t, true
}

func (h *AnalyticsController) GetDailyTotals(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	totals, err := h.svc.DailyTotals(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, totals)
}

func (h *AnalyticsController) GetWeeklyTotals(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	totals, err := h.svc.WeeklyTotals(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, totals)
}

func (h *AnalyticsController) GetProgress(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	progress, err := h.svc.UserProgress(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, progress)
}
