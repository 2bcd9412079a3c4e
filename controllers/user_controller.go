package controllers

import (
	"net/http"

	"caltrack/middlewares"
	"caltrack/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{svc: svc}
}

func (h *UserController) GetProfile(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var patch services.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *UserController) UpdateGoal(c *gin.Context) {
	userID, ok := middlewares.UserIDFromCtx(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input struct {
		DailyCalorieGoal int `json:"daily_calorie_goal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.UpdateGoal(c.Request.Context(), userID, input.DailyCalorieGoal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}
