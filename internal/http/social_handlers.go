package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nartaykz/travellog/internal/metrics"
	"github.com/nartaykz/travellog/internal/queue"
)

// FollowUser godoc
// @Summary Follow another user
// @Tags social
// @Produce json
// @Param id path string true "target user id"
// @Success 200 {object} map[string]bool
// @Router /followUser/{id} [get]
func (h *Handler) FollowUser(c *gin.Context) {
	u := currentUser(c)
	target, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid user id"})
		return
	}
	ctx := c.Request.Context()

	// Idempotency guard: an existing edge is a success:false no-op.
	if u.IsFollowing(target.Hex()) {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	t, err := h.Store.FindUserByID(ctx, target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User Not Found"})
		return
	}

	added, err := h.Store.AddFollow(ctx, u.ID, target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if added {
		metrics.FollowEdits.WithLabelValues("follow").Inc()
		_ = h.Events.Publish(ctx, queue.Exchange, "user.followed",
			queue.UserFollowed{FollowerID: u.ID.Hex(), TargetID: target.Hex()},
			requestID(c))
	}
	c.JSON(http.StatusOK, gin.H{"success": added})
}

// UnfollowUser godoc
// @Summary Unfollow a user
// @Tags social
// @Produce json
// @Param id path string true "target user id"
// @Success 200 {object} map[string]bool
// @Router /unfollowUser/{id} [get]
func (h *Handler) UnfollowUser(c *gin.Context) {
	u := currentUser(c)
	target, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid user id"})
		return
	}
	if !u.IsFollowing(target.Hex()) {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	removed, err := h.Store.RemoveFollow(c.Request.Context(), u.ID, target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if removed {
		metrics.FollowEdits.WithLabelValues("unfollow").Inc()
	}
	c.JSON(http.StatusOK, gin.H{"success": removed})
}

// CheckFollowing godoc
// @Summary Report whether the caller follows the given user
// @Tags social
// @Produce json
// @Param id path string true "target user id"
// @Success 200 {object} map[string]bool
// @Router /checkFollowing/{id} [get]
func (h *Handler) CheckFollowing(c *gin.Context) {
	target, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid user id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": currentUser(c).IsFollowing(target.Hex())})
}
