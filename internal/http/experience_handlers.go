package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nartaykz/travellog/internal/domain"
	"github.com/nartaykz/travellog/internal/log"
	"github.com/nartaykz/travellog/internal/metrics"
	"github.com/nartaykz/travellog/internal/queue"
)

const (
	experiencePageSize = 10
	timelinePageSize   = 20
)

func pageIndex(c *gin.Context) int {
	idx, err := strconv.Atoi(c.Query("index"))
	if err != nil || idx < 0 {
		return 0
	}
	return idx
}

// newestFirst returns a reversed copy of ids: the experiences array is
// append-only, so reverse order is reverse-chronological.
func newestFirst(ids []string) []string {
	out := make([]string, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, ids[i])
	}
	return out
}

func pageOf(ids []string, index, size int) []string {
	if index >= len(ids) {
		return nil
	}
	end := index + size
	if end > len(ids) {
		end = len(ids)
	}
	return ids[index:end]
}

// PostExperience godoc
// @Summary Create an experience post
// @Tags experiences
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /postExperience [post]
func (h *Handler) PostExperience(c *gin.Context) {
	u := currentUser(c)
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		c.JSON(http.StatusOK, gin.H{"error": "bad payload"})
		return
	}
	ctx := c.Request.Context()

	// Inline images become photo documents; the post keeps only ids.
	imageCount := 0
	if raw, ok := body[domain.FieldImages].([]any); ok {
		for i, v := range raw {
			s, ok := v.(string)
			if !ok || !domain.IsDataURI(s) {
				continue
			}
			oid, err := h.Store.InsertPhoto(ctx, s)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "photo save failed"})
				return
			}
			raw[i] = oid.Hex()
			imageCount++
		}
		body[domain.FieldImages] = raw
	}

	p := domain.NewPost(body, u.Email, time.Now())
	if err := h.Store.InsertPost(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	experiences, err := h.Store.AppendExperience(ctx, u.Email, p.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	metrics.ExperiencesPosted.Inc()
	log.L().Info("experience posted",
		zap.String("email", u.Email), zap.String("post_id", p.ID.Hex()))
	_ = h.Events.Publish(ctx, queue.Exchange, "experience.posted",
		queue.ExperiencePosted{PostID: p.ID.Hex(), UserEmail: u.Email, Images: imageCount},
		requestID(c))

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"experiences": pageOf(newestFirst(experiences), 0, experiencePageSize),
	})
}

// resolveExperiencePage maps one page of experience ids to post bodies.
// Any unparsable id fails the whole page, mirroring the contract the
// frontend was built against.
func (h *Handler) resolveExperiencePage(c *gin.Context, ids []string) ([]map[string]any, bool) {
	posts := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, false
		}
		p, err := h.Store.FindPostByID(c.Request.Context(), oid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return nil, true
		}
		if p == nil {
			// Dangling reference; the post collection is not authoritative
			// for the experiences array.
			log.L().Warn("experience references missing post", zap.String("post_id", id))
			continue
		}
		posts = append(posts, p.Body)
	}
	return posts, false
}

func (h *Handler) listExperiences(c *gin.Context, u *domain.User) {
	ids := pageOf(newestFirst(u.Experiences), pageIndex(c), experiencePageSize)
	posts, responded := h.resolveExperiencePage(c, ids)
	if responded {
		return
	}
	if posts == nil {
		posts = []map[string]any{}
	}
	c.JSON(http.StatusOK, gin.H{"experiences": posts})
}

// MyExperiences godoc
// @Summary Caller's experiences, newest first
// @Tags experiences
// @Produce json
// @Param index query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /myExperiences [get]
func (h *Handler) MyExperiences(c *gin.Context) {
	h.listExperiences(c, currentUser(c))
}

// UserExperiences godoc
// @Summary A user's experiences, newest first
// @Tags experiences
// @Produce json
// @Param userId path string true "user id"
// @Param index query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /{userId}/experiences [get]
func (h *Handler) UserExperiences(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid user id"})
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
	h.listExperiences(c, u)
}

// DeleteExperience godoc
// @Summary Unlink an experience from the caller
// @Tags experiences
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} map[string]any
// @Router /experience/{id} [delete]
func (h *Handler) DeleteExperience(c *gin.Context) {
	u := currentUser(c)
	// The post document itself stays behind; only the owner's reference
	// list shrinks.
	experiences, err := h.Store.RemoveExperience(c.Request.Context(), u.Email, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"experiences": pageOf(newestFirst(experiences), 0, experiencePageSize),
	})
}

type timelineEntry struct {
	Post map[string]any `json:"post"`
	User domain.Summary `json:"user"`
}

// Timeline godoc
// @Summary Posts from followed users, newest first
// @Tags experiences
// @Produce json
// @Param index query int false "page offset"
// @Success 200 {object} map[string][]timelineEntry
// @Router /timeline [get]
func (h *Handler) Timeline(c *gin.Context) {
	u := currentUser(c)
	ctx := c.Request.Context()

	ids := make([]primitive.ObjectID, 0, len(u.Following))
	for _, s := range u.Following {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			ids = append(ids, oid)
		}
	}

	followed, err := h.Store.FindUsersByIDs(ctx, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	emails := make([]string, 0, len(followed))
	authors := make(map[string]domain.Summary, len(followed))
	for _, f := range followed {
		emails = append(emails, f.Email)
		authors[f.Email] = domain.Summary{ID: f.ID, Name: f.Name, Picture: f.Picture}
	}

	posts, err := h.Store.FindPostsByAuthors(ctx, emails, pageIndex(c), timelinePageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	out := make([]timelineEntry, 0, len(posts))
	for _, p := range posts {
		author, ok := authors[p.OwnerEmail()]
		if !ok {
			// Author no longer in the follow snapshot; resolve directly.
			a, err := h.Store.FindUserByEmail(ctx, p.OwnerEmail())
			if err != nil || a == nil {
				continue
			}
			author = domain.Summary{ID: a.ID, Name: a.Name, Picture: a.Picture}
			authors[p.OwnerEmail()] = author
		}
		out = append(out, timelineEntry{Post: p.Body, User: author})
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}
