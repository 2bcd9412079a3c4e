package controllers

import (
	"net/http"
	"strconv"
	"time"

	"caltrack/middlewares"
	"caltrack/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	svc *services.MealService
}

func NewMealController(svc *services.MealService) *MealController {
	return &MealController{svc: svc}
}

func (h *MealController) LogMeal(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input services.LogMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := h.svc.LogMeal(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, meal)
}

func (h *MealController) GetMeal(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid meal id")
		return
	}

	meal, err := h.svc.GetMeal(c.Request.Context(), userID, uint(mealID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, meal)
}

func (h *MealController) ListMeals(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var filter services.ListMealsFilter
	filter.Type = c.Query("type")
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid page")
			return
		}
		filter.Page = n
	}
	if v := c.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid page_size")
			return
		}
		filter.PageSize = n
	}
	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid from date")
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid to date")
			return
		}
		end := t.Add(24 * time.Hour)
		filter.To = &end
	}

	meals, total, err := h.svc.ListMeals(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"meals": meals, "total": total})
}

func (h *MealController) UpdateMeal(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid meal id")
		return
	}

	var patch services.MealPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := h.svc.UpdateMeal(c.Request.Context(), userID, uint(mealID), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, meal)
}

func (h *MealController) DeleteMeal(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid meal id")
		return
	}

	if err := h.svc.DeleteMeal(c.Request.Context(), userID, uint(mealID)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "meal deleted")
}
