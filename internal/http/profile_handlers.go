package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nartaykz/travellog/internal/domain"
	"github.com/nartaykz/travellog/internal/log"
	"github.com/nartaykz/travellog/internal/security"
)

// MyFullInfo godoc
// @Summary Caller's own profile with follower/following counts
// @Tags profile
// @Produce json
// @Success 200 {object} domain.FullInfo
// @Router /myFullInfo [get]
func (h *Handler) MyFullInfo(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c).FullInfo())
}

type updateInfoReq struct {
	Name          string `json:"newUserName"`
	Location      string `json:"newUserLocation"`
	Website       string `json:"newUserWebsite"`
	Bio           string `json:"newUserBio"`
	ProfilePicSrc string `json:"profilePicSrc"`
}

// UpdateUserInfo godoc
// @Summary Overwrite the caller's profile fields
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body updateInfoReq true "profile"
// @Success 200 {object} map[string]bool
// @Router /updateUserInfo [post]
func (h *Handler) UpdateUserInfo(c *gin.Context) {
	u := currentUser(c)
	var in updateInfoReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "bad payload"})
		return
	}
	ctx := c.Request.Context()

	picture := u.Picture
	if in.ProfilePicSrc != "" {
		if domain.IsDataURI(in.ProfilePicSrc) {
			oid, err := h.Store.InsertPhoto(ctx, in.ProfilePicSrc)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "photo save failed"})
				return
			}
			picture = oid.Hex()
		} else {
			picture = in.ProfilePicSrc
		}
	}

	// Deliberately unconditional: omitted request fields overwrite with
	// empty values, matching the frontend's full-form submit.
	err := h.Store.UpdateProfile(ctx, u.Email, domain.ProfileUpdate{
		Name:        in.Name,
		Location:    in.Location,
		Website:     in.Website,
		Description: in.Bio,
		Picture:     picture,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type updateCredentialsReq struct {
	NewPassword string `json:"newPassword"`
}

// UpdateUserCredentials godoc
// @Summary Replace the caller's password
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body updateCredentialsReq true "credentials"
// @Success 200 {object} map[string]bool
// @Router /updateUserCredentials [post]
func (h *Handler) UpdateUserCredentials(c *gin.Context) {
	u := currentUser(c)
	var in updateCredentialsReq
	if err := c.ShouldBindJSON(&in); err != nil || in.NewPassword == "" {
		c.JSON(http.StatusOK, gin.H{"error": "bad payload"})
		return
	}
	hash, err := security.HashPassword(in.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash failed"})
		return
	}
	if err := h.Store.UpdatePassword(c.Request.Context(), u.Email, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUser godoc
// @Summary Public profile by user id
// @Tags profile
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} domain.PublicProfile
// @Failure 404 {object} map[string]string
// @Router /user/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Status(http.StatusOK)
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), oid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User Not Found"})
		return
	}
	c.JSON(http.StatusOK, u.PublicProfile())
}

// SearchUser godoc
// @Summary Case-insensitive name search
// @Tags profile
// @Produce json
// @Param name path string true "name fragment"
// @Success 200 {object} map[string][]domain.Summary
// @Router /searchUser/{name} [get]
func (h *Handler) SearchUser(c *gin.Context) {
	users, err := h.Store.SearchUsers(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	out := make([]domain.Summary, 0, len(users))
	for _, u := range users {
		out = append(out, domain.Summary{ID: u.ID, Name: u.Name, Picture: u.Picture})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// RandomUsers godoc
// @Summary Five follow suggestions other than the caller
// @Tags profile
// @Produce json
// @Success 200 {object} map[string][]domain.Summary
// @Router /randomUsers [get]
func (h *Handler) RandomUsers(c *gin.Context) {
	users, err := h.Store.RandomUsers(c.Request.Context(), currentUser(c).Email, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	out := make([]domain.Summary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// GetPhoto godoc
// @Summary Raw image bytes decoded from the stored data URI
// @Tags photos
// @Produce octet-stream
// @Param id path string true "photo id"
// @Success 200
// @Failure 404 {string} string "Picture Not found"
// @Router /photo/{id} [get]
func (h *Handler) GetPhoto(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		// Malformed ids end the response quietly, matching the frontend's
		// expectation of a bodyless success.
		c.Status(http.StatusOK)
		return
	}
	p, err := h.Store.FindPhotoByID(c.Request.Context(), oid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if p == nil {
		c.String(http.StatusNotFound, "Picture Not found")
		return
	}
	contentType, data, err := domain.DecodeDataURI(p.Image)
	if err != nil {
		log.L().Warn("stored photo is not a data URI", zap.String("id", oid.Hex()))
		c.String(http.StatusNotFound, "Picture Not found")
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
