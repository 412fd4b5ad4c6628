package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/policy"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/middleware"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

// ClubController serves the public club catalogue and the student join flow
type ClubController struct {
	clubService services.ClubService
	memberships *policy.MembershipPolicy
	logger      zerolog.Logger
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService, memberships *policy.MembershipPolicy, logger zerolog.Logger) *ClubController {
	return &ClubController{
		clubService: clubService,
		memberships: memberships,
		logger:      logger,
	}
}

func viewerID(ctx *gin.Context) string {
	if caller := middleware.CallerFrom(ctx); caller != nil {
		return caller.UserID
	}
	return ""
}

// Explore lists clubs with optional category and search filters
func (c *ClubController) Explore(ctx *gin.Context) {
	var query dto.ExploreQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	page, limit := helpers.ParsePaginationParams(ctx)

	resp, err := c.clubService.Explore(ctx.Request.Context(), viewerID(ctx), models.ClubFilter{
		Category: query.Category,
		Search:   query.Search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Details returns a single club
func (c *ClubController) Details(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.clubService.Details(ctx.Request.Context(), viewerID(ctx), clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Join files a pending membership request for the calling student
func (c *ClubController) Join(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	membership, err := c.memberships.RequestJoin(ctx.Request.Context(), middleware.CallerFrom(ctx), models.JoinCommand{ClubID: clubID})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(membership, "Join request sent"))
}

// Leave removes the calling student's membership
func (c *ClubController) Leave(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.memberships.Leave(ctx.Request.Context(), middleware.CallerFrom(ctx), models.LeaveCommand{ClubID: clubID}); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Successfully left the club"))
}
