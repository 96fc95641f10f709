package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veldspar/sitepay/internal/models"
	"github.com/veldspar/sitepay/internal/service"
)

type handlers struct {
	svc *service.LedgerService
}

// renderError maps service errors to HTTP statuses: invalid input 400,
// missing references 404, everything else 500.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.Error("Request handling failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *handlers) getData(c *gin.Context) {
	view, err := h.svc.Data(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) saveData(c *gin.Context) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed document: " + err.Error()})
		return
	}

	calculations, err := h.svc.SaveData(c.Request.Context(), &doc)
	if err != nil {
		renderError(c, err)
		return
	}

	resp := gin.H{"status": "success"}
	if calculations != nil {
		resp["calculations"] = calculations
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) getConfig(c *gin.Context) {
	cfg, err := h.svc.Config(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *handlers) saveConfig(c *gin.Context) {
	var cfg models.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed config: " + err.Error()})
		return
	}

	if err := h.svc.SaveConfig(c.Request.Context(), cfg); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "config": cfg})
}

func (h *handlers) calculate(c *gin.Context) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed document: " + err.Error()})
		return
	}

	result, err := h.svc.Calculate(c.Request.Context(), &doc)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) exportData(c *gin.Context) {
	view, err := h.svc.Export(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) importData(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	view, err := h.svc.Import(c.Request.Context(), raw)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type addMembersRequest struct {
	// Names is delimited text: one member name per line, comma, or
	// semicolon.
	Names string `json:"names"`
}

func (h *handlers) addMembers(c *gin.Context) {
	var req addMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid names"})
		return
	}

	added, err := h.svc.AddMembers(c.Request.Context(), req.Names)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": added})
}

type updateMemberRequest struct {
	Name       *string `json:"name"`
	IsSalvager *bool   `json:"isSalvager"`
}

func (h *handlers) updateMember(c *gin.Context) {
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed member update"})
		return
	}

	member, err := h.svc.UpdateMember(c.Request.Context(), c.Param("id"), req.Name, req.IsSalvager)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *handlers) removeMember(c *gin.Context) {
	if err := h.svc.RemoveMember(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type addSiteRequest struct {
	Name         string       `json:"name"`
	Level        models.Level `json:"level"`
	Participants []string     `json:"participants"`
}

func (h *handlers) addSite(c *gin.Context) {
	var req addSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed site"})
		return
	}

	site, err := h.svc.AddSite(c.Request.Context(), req.Name, req.Level, req.Participants)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *handlers) updateSite(c *gin.Context) {
	var site models.Site
	if err := c.ShouldBindJSON(&site); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed site"})
		return
	}
	site.ID = c.Param("id")

	if err := h.svc.UpdateSite(c.Request.Context(), site); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *handlers) removeSite(c *gin.Context) {
	if err := h.svc.RemoveSite(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
