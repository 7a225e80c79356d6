package main

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/config"
	"github.com/Zachkp/diary/internal/content"
	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/logging"
)

type server struct {
	cfg       config.Config
	catalog   *content.Catalog
	preloader *frames.Preloader
	logger    *zap.Logger
}

// sequenceDir is where the frame assets live on disk.
func sequenceDir(cfg config.Config) string {
	return filepath.Join(cfg.FramesDir, filepath.FromSlash(strings.TrimPrefix(frames.SequenceDir, "/")))
}

var templateFuncs = template.FuncMap{
	"frameURL": frames.URLPath,
	"lower":    strings.ToLower,
	"add":      func(a, b int) int { return a + b },
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(s.logger, s.cfg.IPSalt), preferencesMiddleware())
	r.SetFuncMap(templateFuncs)
	r.LoadHTMLGlob(s.cfg.TemplatesGlob)

	r.Static("/static", s.cfg.StaticDir)
	r.Static(frames.SequenceDir, sequenceDir(s.cfg))

	r.GET("/", s.home)
	r.GET("/resume", s.resume)
	r.GET("/resume/qr.png", s.resumeQR)
	r.POST("/language", s.setLanguage)
	r.POST("/serious", s.setSerious)

	api := r.Group("/api")
	api.GET("/content/:lang", s.apiContent)
	api.GET("/ui/:lang", s.apiUI)

	av := r.Group("/avatar", s.requireFrames)
	av.GET("/frame/:file", s.avatarFrame)
	av.GET("/transition.gif", s.avatarTransition)

	r.GET("/healthz", s.healthz)
	return r
}

func (s *server) healthz(c *gin.Context) {
	st, ready := s.preloader.Store()
	avatar := gin.H{"ready": ready}
	if ready {
		avatar["loaded"] = st.Loaded()
		avatar["failed"] = s.preloader.Failed()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "avatar": avatar})
}
