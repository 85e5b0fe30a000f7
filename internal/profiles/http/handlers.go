package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the3dsandwich/csci3100-grp31/internal/auth"
	"github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
	"github.com/the3dsandwich/csci3100-grp31/internal/profiles/service"
)

// ImageUploader pushes a profile image into blob storage and returns its URL.
type ImageUploader interface {
	UploadProfileImage(ctx context.Context, uid, filename string, r io.Reader) (string, error)
}

type Handler struct {
	svc      *service.ProfileService
	uploader ImageUploader
}

func New(svc *service.ProfileService, uploader ImageUploader) *Handler {
	return &Handler{svc: svc, uploader: uploader}
}

func (h *Handler) bootstrap(c *gin.Context) {
	uid := auth.CallerUID(c)
	if err := h.svc.EnsureAccount(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "uid": uid})
}

func (h *Handler) me(c *gin.Context) {
	h.getProfile(c, auth.CallerUID(c))
}

func (h *Handler) byUID(c *gin.Context) {
	h.getProfile(c, c.Param("uid"))
}

func (h *Handler) getProfile(c *gin.Context, uid string) {
	p, err := h.svc.Get(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

func (h *Handler) update(c *gin.Context) {
	var in service.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.svc.Update(c.Request.Context(), auth.CallerUID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
		case errors.Is(err, domain.ErrInvalidProfile):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) uploadImage(c *gin.Context) {
	uid := auth.CallerUID(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "cannot read image file"})
		return
	}
	defer file.Close()

	src, err := h.uploader.UploadProfileImage(c.Request.Context(), uid, fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.svc.SetProfileImage(c.Request.Context(), uid, src); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profileImageSrc": src})
}
