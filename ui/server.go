// Package ui serves the course walkthroughs as HTML pages.
package ui

import (
	"fmt"
	"net/http"
	"strconv"

	"ecostat/app"
	"ecostat/internal"
	"ecostat/internal/config"
	"ecostat/internal/report"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the course UI
type Server struct {
	router *gin.Engine
	fish   *app.FishSurveyService
	water  *app.WaterQualityService
	log    *internal.Logger
}

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
<nav><a href="/">home</a> | <a href="/courses/fish">fish survey</a> | <a href="/courses/water">water quality</a></nav>
%s
</body>
</html>`

// NewServer creates a new web server instance
func NewServer(cfg config.ServerConfig, fish *app.FishSurveyService, water *app.WaterQualityService, logger *internal.Logger) *Server {
	gin.SetMode(cfg.GinMode)

	s := &Server{
		router: gin.Default(),
		fish:   fish,
		water:  water,
		log:    logger.WithPrefix("ui"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/courses/fish", s.handleFishCourse)
	s.router.GET("/courses/water", s.handleWaterCourse)
}

func (s *Server) handleIndex(c *gin.Context) {
	body := `<h1>Environmental Statistics Course</h1>
<p>Two walkthroughs over synthetic data. Add <code>?seed=N</code> to either page to fix the dataset.</p>
<ul>
<li><a href="/courses/fish">Fish length survey</a>: descriptive statistics, confidence intervals, t-tests, ANOVA</li>
<li><a href="/courses/water">Water quality exploration</a>: summaries, skewness, variance equality, correlation</li>
</ul>`
	s.renderPage(c, "ecostat", body)
}

func (s *Server) handleFishCourse(c *gin.Context) {
	result, err := s.fish.Run(c.Request.Context(), querySeed(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.renderPage(c, "Fish Length Survey", string(report.RenderHTML(report.FishSurveyMarkdown(result))))
}

func (s *Server) handleWaterCourse(c *gin.Context) {
	result, err := s.water.Run(c.Request.Context(), querySeed(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.renderPage(c, "Water Quality Exploration", string(report.RenderHTML(report.WaterQualityMarkdown(result))))
}

func (s *Server) renderPage(c *gin.Context, title, body string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, fmt.Sprintf(pageShell, title, body))
}

func (s *Server) renderError(c *gin.Context, err error) {
	s.log.Error("page render failed: %v", err)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusInternalServerError, fmt.Sprintf(pageShell, "error",
		fmt.Sprintf("<h1>Analysis failed</h1><pre>%s</pre>", err)))
}

// Run starts the server on the given port
func (s *Server) Run(port string) error {
	s.log.Info("course UI listening on :%s", port)
	return s.router.Run(":" + port)
}

func querySeed(c *gin.Context) int64 {
	if v := c.Query("seed"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return seed
		}
	}
	return -1
}
