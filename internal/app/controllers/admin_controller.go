package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/policy"
	"github.com/yigit/clubhub/internal/middleware"
)

// AdminController handles club administration and both dashboards
type AdminController struct {
	clubs *policy.ClubPolicy
}

// NewAdminController creates a new AdminController
func NewAdminController(clubs *policy.ClubPolicy) *AdminController {
	return &AdminController{clubs: clubs}
}

// CreateClub opens a new club owned by the caller
func (c *AdminController) CreateClub(ctx *gin.Context) {
	var req dto.CreateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	club, err := c.clubs.CreateClub(ctx.Request.Context(), middleware.CallerFrom(ctx), req.ToCommand())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(club, "Club created"))
}

func (c *AdminController) UpdateClub(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	club, err := c.clubs.UpdateClub(ctx.Request.Context(), middleware.CallerFrom(ctx), clubID, req.ToUpdate())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Club updated"))
}

func (c *AdminController) DeleteClub(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.clubs.DeleteClub(ctx.Request.Context(), middleware.CallerFrom(ctx), clubID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Club deleted"))
}

func (c *AdminController) CreateEvent(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.clubs.CreateEvent(ctx.Request.Context(), middleware.CallerFrom(ctx), clubID, req.ToCommand())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event, "Event created"))
}

func (c *AdminController) CreateAnnouncement(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	announcement, err := c.clubs.CreateAnnouncement(ctx.Request.Context(), middleware.CallerFrom(ctx), clubID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(announcement, "Announcement posted"))
}

// AdminDashboard summarises the caller's clubs
func (c *AdminController) AdminDashboard(ctx *gin.Context) {
	resp, err := c.clubs.AdminDashboard(ctx.Request.Context(), middleware.CallerFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// StudentDashboard shows the caller's clubs and open requests
func (c *AdminController) StudentDashboard(ctx *gin.Context) {
	resp, err := c.clubs.StudentDashboard(ctx.Request.Context(), middleware.CallerFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
