package main

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/decor"
	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/lang"
	"github.com/Zachkp/diary/internal/logging"
)

// section decorations, in page order
var (
	dividerFills = map[string]string{
		"timeline": "var(--paper)",
		"skills":   "var(--sky)",
		"contact":  "var(--paper)",
	}
	doodleVariants = []struct {
		section, variant, density string
	}{
		{"hero", "mixed", "normal"},
		{"timeline", "tech", "sparse"},
		{"skills", "code", "sparse"},
		{"sneakpeek", "fun", "normal"},
		{"contact", "mixed", "sparse"},
	}
)

func (s *server) pageData(c *gin.Context) gin.H {
	p := prefsFrom(c)
	nav := decor.DefaultMapNav()

	dividers := make(map[string]decor.Divider, len(dividerFills))
	variant := 1
	for _, sec := range decor.Sections {
		fill, ok := dividerFills[sec.ID]
		if !ok {
			continue
		}
		dividers[sec.ID] = decor.NewDivider(variant, true, fill)
		variant = variant%len(decor.WavePaths) + 1
	}
	doodles := make(map[string][]decor.Doodle, len(doodleVariants))
	for i, d := range doodleVariants {
		doodles[d.section] = decor.Doodles(d.variant, d.density, uint64(i+1))
	}

	_, ready := s.preloader.Store()
	data := gin.H{
		"Lang":        p.Lang,
		"OtherLang":   p.Lang.Other(),
		"Mode":        p.Mode,
		"Serious":     p.Mode.IsSerious(),
		"Content":     s.catalog.Content(p.Lang),
		"UI":          s.catalog.UI(p.Lang),
		"Nav":         nav,
		"Checkpoints": nav.Checkpoints(),
		"Dividers":    dividers,
		"Doodles":     doodles,
		"AvatarFrame": frames.For(p.Lang),
		"AvatarReady": ready,
		"Path":        c.Request.URL.Path,
		"Year":        time.Now().Year(),
		"Japanese":    p.Lang == lang.Japanese,
	}
	if gif := transitionURL(c.Query("from"), p.Lang); ready && gif != "" {
		data["Transition"] = gif
	}
	return data
}

// transitionURL names the recorded sweep played once after a language
// change, or "" when from is missing, unknown or already the current language.
func transitionURL(from string, to lang.Language) string {
	l, err := lang.Parse(from)
	if from == "" || err != nil || l == to {
		return ""
	}
	return "/avatar/transition.gif?" + url.Values{"from": {l.String()}, "to": {to.String()}}.Encode()
}

func (s *server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.pageData(c))
}

func (s *server) resume(c *gin.Context) {
	data := s.pageData(c)
	data["Experiences"] = s.catalog.Content(prefsFrom(c).Lang).ResumeExperiences()
	data["SiteURL"] = s.cfg.SiteURL
	c.HTML(http.StatusOK, "resume.html", data)
}

// resumeQR links the printed resume back to the live site.
func (s *server) resumeQR(c *gin.Context) {
	png, err := qrcode.Encode(s.cfg.SiteURL, qrcode.Medium, 256)
	if err != nil {
		logging.FromContext(c).Error("qr code", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render qr code"})
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}

func (s *server) apiContent(c *gin.Context) {
	l, err := lang.Parse(c.Param("lang"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.catalog.Content(l))
}

func (s *server) apiUI(c *gin.Context) {
	l, err := lang.Parse(c.Param("lang"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.catalog.UI(l).Tree())
}
