package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/policy"
	"github.com/yigit/clubhub/internal/middleware"
)

// MembershipController lists memberships and records admin decisions
type MembershipController struct {
	memberships *policy.MembershipPolicy
}

// NewMembershipController creates a new MembershipController
func NewMembershipController(memberships *policy.MembershipPolicy) *MembershipController {
	return &MembershipController{memberships: memberships}
}

// List returns the memberships visible to the caller, optionally filtered by club and status
func (c *MembershipController) List(ctx *gin.Context) {
	var query dto.MembershipListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	entries, counts, err := c.memberships.List(ctx.Request.Context(), middleware.CallerFrom(ctx), models.ListQuery{
		ClubID: query.ClubID,
		Status: models.MembershipStatus(query.Status),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MembershipListResponse{
		Memberships: entries,
		Counts:      counts,
	}, ""))
}

// Decide approves or rejects a membership
func (c *MembershipController) Decide(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	membershipID, ok := uuidParam(ctx, "membershipId")
	if !ok {
		return
	}

	var req dto.DecideRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	membership, err := c.memberships.Decide(ctx.Request.Context(), middleware.CallerFrom(ctx), models.DecideCommand{
		ClubID:       clubID,
		MembershipID: membershipID,
		Action:       models.Decision(req.Action),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(membership, "Membership "+string(membership.Status)))
}
