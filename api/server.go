// Package api exposes the aggregated corpus over a small read-only HTTP API
// plus a crawl trigger.
package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"invoiceradar/sources"
	"invoiceradar/store"
	"invoiceradar/types"
)

const defaultNewsLimit = 50

// Runner triggers one aggregation run; the orchestrator satisfies this.
type Runner interface {
	RunOnce(ctx context.Context) error
}

// Server serves corpus reads and crawl triggers.
type Server struct {
	store    store.Store
	adapters []sources.Adapter
	runner   Runner

	// crawling guards against overlapping runs.
	crawling atomic.Bool
}

func NewServer(st store.Store, adapters []sources.Adapter, runner Runner) *Server {
	return &Server{store: st, adapters: adapters, runner: runner}
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	g := r.Group("/api")
	g.GET("/health", s.handleHealth)
	g.GET("/news", s.handleListNews)
	g.GET("/news/:id", s.handleGetNews)
	g.GET("/sources", s.handleListSources)
	g.POST("/crawl", s.handleCrawl)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListNews returns corpus items, newest first, filtered by the
// optional region, country, source, and category query parameters.
func (s *Server) handleListNews(c *gin.Context) {
	corpus, err := s.store.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	region := c.Query("region")
	country := c.Query("country")
	source := c.Query("source")
	category := c.Query("category")

	limit := defaultNewsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	items := make([]*types.Item, 0, limit)
	for _, item := range corpus.Items {
		if region != "" && !strings.EqualFold(item.Region, region) {
			continue
		}
		if country != "" && !strings.EqualFold(item.Country, country) {
			continue
		}
		if source != "" && !strings.EqualFold(item.Source.ID, source) {
			continue
		}
		if category != "" && !hasCategory(item, category) {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"lastUpdated": corpus.LastUpdated,
		"runStatus":   corpus.RunStatus,
		"totalItems":  corpus.TotalItems,
		"count":       len(items),
		"items":       items,
	})
}

func (s *Server) handleGetNews(c *gin.Context) {
	corpus, err := s.store.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	for _, item := range corpus.Items {
		if item.ID == id {
			c.JSON(http.StatusOK, item)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
}

func (s *Server) handleListSources(c *gin.Context) {
	srcs := make([]types.Source, 0, len(s.adapters))
	for _, a := range s.adapters {
		srcs = append(srcs, types.Source{ID: a.SourceID(), Name: a.SourceName(), Kind: a.SourceKind()})
	}
	c.JSON(http.StatusOK, gin.H{"sources": srcs})
}

// handleCrawl starts a run in the background. A second trigger while one is
// in flight gets 409.
func (s *Server) handleCrawl(c *gin.Context) {
	if s.runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "crawling not configured"})
		return
	}
	if !s.crawling.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": "a crawl is already running"})
		return
	}

	go func() {
		defer s.crawling.Store(false)
		if err := s.runner.RunOnce(context.Background()); err != nil {
			log.Printf("api: triggered crawl failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "crawl started"})
}

func hasCategory(item *types.Item, category string) bool {
	for _, c := range item.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}
