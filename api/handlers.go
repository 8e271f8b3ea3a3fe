package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"paperscrape/crawler"
	"paperscrape/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Scraper is the part of crawler.Scraper the handlers need.
type Scraper interface {
	Scrape(ctx context.Context, pageURL string, opts crawler.ScrapeOptions) (*crawler.Result, error)
	ScrapeHTML(ctx context.Context, pageURL string, body []byte) (*crawler.Result, error)
}

type Handler struct {
	Scraper Scraper
	Store   storage.PaperRepository
	logger  *zap.Logger
}

func NewHandler(scraper Scraper, store storage.PaperRepository, logger *zap.Logger) *Handler {
	return &Handler{Scraper: scraper, Store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extract)
	rg.GET("/papers", h.listPapers)
	rg.GET("/papers/lookup", h.lookupPaper)
}

type extractReq struct {
	URL    string `json:"url"`
	HTML   string `json:"html"`
	Render bool   `json:"render"`
	Save   bool   `json:"save"`
}

func (h *Handler) extract(c *gin.Context) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	ctx := c.Request.Context()
	var (
		res *crawler.Result
		err error
	)
	if req.HTML != "" {
		res, err = h.Scraper.ScrapeHTML(ctx, req.URL, []byte(req.HTML))
	} else {
		opts := crawler.ScrapeOptions{Render: req.Render, Save: req.Save && h.Store != nil}
		res, err = h.Scraper.Scrape(ctx, req.URL, opts)
	}
	if err != nil {
		crawler.ContextLogger(ctx, h.logger).Warn("extract failed",
			zap.String("url", req.URL),
			zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Paper-Site", string(res.Site))
	c.JSON(http.StatusOK, res.Metadata)
}

func (h *Handler) listPapers(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage disabled"})
		return
	}

	limit := defaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	records, err := h.Store.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	if records == nil {
		records = []storage.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"papers": records, "count": len(records)})
}

func (h *Handler) lookupPaper(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage disabled"})
		return
	}

	pageURL := strings.TrimSpace(c.Query("url"))
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	rec, err := h.Store.Get(c.Request.Context(), pageURL)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "paper not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// statusFor maps scrape errors; anything not caused by the request itself is
// an upstream failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, crawler.ErrUnsupportedURL):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
