package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/lang"
	"github.com/Zachkp/diary/internal/logging"
	"github.com/Zachkp/diary/internal/theme"
)

const (
	prefsKey       = "prefs"
	cookieLifetime = 365 * 24 * 3600
)

// prefs is the visitor's language and display mode for one request.
type prefs struct {
	Lang lang.Language
	Mode theme.Mode
}

// preferencesMiddleware resolves the language from ?hl=, the language cookie
// or Accept-Language, and the mode from ?serious= or its cookie.
func preferencesMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := prefs{Lang: lang.Negotiate(c.GetHeader("Accept-Language"))}
		if v, err := c.Cookie(lang.PreferenceKey); err == nil {
			if l, err := lang.Parse(v); err == nil {
				p.Lang = l
			}
		}
		if l, err := lang.Parse(c.Query("hl")); err == nil {
			p.Lang = l
		}

		if v, err := c.Cookie(theme.CookieName); err == nil {
			p.Mode = theme.ParseMode(v)
		}
		if v, ok := c.GetQuery("serious"); ok {
			p.Mode = theme.ParseMode(v)
		}

		c.Set(prefsKey, p)
		c.Next()
	}
}

func prefsFrom(c *gin.Context) prefs {
	if v, ok := c.Get(prefsKey); ok {
		if p, ok := v.(prefs); ok {
			return p
		}
	}
	return prefs{Lang: lang.Primary}
}

// setLanguage stores the language cookie. An explicit lang form value wins;
// otherwise the current language is toggled.
func (s *server) setLanguage(c *gin.Context) {
	p := prefsFrom(c)
	next := p.Lang.Other()
	if v := c.PostForm("lang"); v != "" {
		l, err := lang.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		next = l
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(lang.PreferenceKey, next.String(), cookieLifetime, "/", "", false, true)
	logging.FromContext(c).Debug("language preference set", zap.String("lang", next.String()))

	// the next page plays the avatar sweep from the language shown until now
	var params url.Values
	if next != p.Lang {
		params = url.Values{"from": {p.Lang.String()}}
	}
	s.redirectBack(c, params)
}

// setSerious toggles the serious-mode cookie, or sets it from the mode form value.
func (s *server) setSerious(c *gin.Context) {
	p := prefsFrom(c)
	next := p.Mode.Toggle()
	if v, ok := c.GetPostForm("mode"); ok {
		next = theme.ParseMode(v)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(theme.CookieName, next.String(), cookieLifetime, "/", "", false, true)
	s.redirectBack(c, nil)
}

// redirectBack returns to the page named by the redirect form value, with
// params merged into its query. Only local paths are followed. HTMX requests
// get a refresh header, or a client redirect when there are params to carry.
func (s *server) redirectBack(c *gin.Context, params url.Values) {
	target := c.PostForm("redirect")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		target = "/"
	}
	if len(params) > 0 {
		if u, err := url.Parse(target); err == nil {
			q := u.Query()
			q.Del("hl")
			q.Del("from")
			for k, v := range params {
				q[k] = v
			}
			u.RawQuery = q.Encode()
			target = u.String()
		}
	}

	if c.GetHeader("HX-Request") == "true" {
		if len(params) > 0 {
			c.Header("HX-Redirect", target)
		} else {
			c.Header("HX-Refresh", "true")
		}
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}
