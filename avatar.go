package main

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/avatar"
	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/lang"
	"github.com/Zachkp/diary/internal/logging"
	"github.com/Zachkp/diary/internal/render"
)

// how long the last still of a recorded transition stays up
const finalHold = time.Second

const framesKey = "frames"

// requireFrames answers 503 until every frame load has settled.
func (s *server) requireFrames(c *gin.Context) {
	st, ok := s.preloader.Store()
	if !ok {
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "avatar frames are still loading"})
		return
	}
	c.Set(framesKey, st)
	c.Next()
}

func framesFrom(c *gin.Context) *frames.Store {
	return c.MustGet(framesKey).(*frames.Store)
}

// viewport reads the logical size and device pixel ratio of the requested
// surface. Missing values fall back to the configured avatar size and 1.
func (s *server) viewport(c *gin.Context) (w, h int, ratio float64, ok bool) {
	w, h, ratio = s.cfg.AvatarWidth, s.cfg.AvatarHeight, 1
	var err error
	if v := c.Query("w"); v != "" {
		if w, err = strconv.Atoi(v); err != nil || w < 1 || w > render.MaxSide {
			return 0, 0, 0, false
		}
	}
	if v := c.Query("h"); v != "" {
		if h, err = strconv.Atoi(v); err != nil || h < 1 || h > render.MaxSide {
			return 0, 0, 0, false
		}
	}
	if v := c.Query("dpr"); v != "" {
		if ratio, err = strconv.ParseFloat(v, 64); err != nil || ratio <= 0 || ratio > render.MaxRatio {
			return 0, 0, 0, false
		}
	}
	if float64(w)*ratio > render.MaxSide || float64(h)*ratio > render.MaxSide {
		return 0, 0, 0, false
	}
	return w, h, ratio, true
}

// avatarFrame paints one frame, e.g. /avatar/frame/12.png, at the requested
// size and pixel ratio.
func (s *server) avatarFrame(c *gin.Context) {
	name := c.Param("file")
	n, err := strconv.Atoi(strings.TrimSuffix(name, ".png"))
	if err != nil || !strings.HasSuffix(name, ".png") || !frames.Index(n).Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such frame"})
		return
	}
	w, h, ratio, ok := s.viewport(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
		return
	}

	surface := render.NewSurface(framesFrom(c), w, h, ratio)
	surface.Paint(frames.Index(n))
	if _, painted := surface.Current(); !painted {
		c.JSON(http.StatusNotFound, gin.H{"error": "frame unavailable"})
		return
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, surface.Snapshot()); err != nil {
		logging.FromContext(c).Error("encode frame", zap.Int("frame", n), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render frame"})
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// avatarTransition records the frames painted while switching between two
// languages and returns them as an animated GIF.
func (s *server) avatarTransition(c *gin.Context) {
	from, to := lang.Primary, lang.Secondary
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = lang.Parse(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = lang.Parse(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	w, h, ratio, ok := s.viewport(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
		return
	}
	reduced, _ := strconv.ParseBool(c.Query("reduced"))

	emissions := avatar.Sweep(from, to, avatar.SweepOptions{
		Duration:      s.cfg.Transition(),
		ReducedMotion: reduced,
	})
	surface := render.NewSurface(framesFrom(c), w, h, ratio)
	stills := make([]render.Still, 0, len(emissions))
	for i, e := range emissions {
		surface.Paint(e.Frame)
		delay := finalHold
		if i+1 < len(emissions) {
			delay = emissions[i+1].At - e.At
		}
		stills = append(stills, render.Still{Image: surface.Snapshot(), Delay: delay})
	}

	var buf bytes.Buffer
	if err := render.EncodeGIF(&buf, stills); err != nil {
		logging.FromContext(c).Error("encode transition", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render transition"})
		return
	}
	logging.FromContext(c).Debug("transition rendered",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Int("stills", len(stills)),
	)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/gif", buf.Bytes())
}
