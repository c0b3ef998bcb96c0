package http

import (
	"context"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Relay/internal/adapters/signal"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/domain"
)

const (
	ownedStreamsKey = "owned_streams"
	maxOwnedStreams = 16
)

func ownedStreams(s sessions.Session) []string {
	raw, _ := s.Get(ownedStreamsKey).(string)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// rememberStream marks id as created by this browser so its stream page
// opens in streamer mode.
func rememberStream(s sessions.Session, id domain.SessionID) error {
	owned := append(ownedStreams(s), string(id))
	if len(owned) > maxOwnedStreams {
		owned = owned[len(owned)-maxOwnedStreams:]
	}
	s.Set(ownedStreamsKey, strings.Join(owned, ","))
	return s.Save()
}

type pages struct {
	loaded bool
}

func (p pages) render(c *gin.Context, name string, data gin.H) {
	if !p.loaded {
		c.JSON(http.StatusOK, data)
		return
	}
	c.HTML(http.StatusOK, name, data)
}

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.SignalWSController, gatherer prometheus.Gatherer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("RelaySessions", store))

	var p pages
	pattern := filepath.Join(cfg.TemplatePath, "*.html")
	if matches, _ := filepath.Glob(pattern); len(matches) > 0 {
		r.LoadHTMLGlob(pattern)
		p.loaded = true
	} else {
		log.Warn().Str("module", "adapters.http").Str("templates", pattern).Msg("no templates, pages render as JSON")
	}

	r.Static("/static", cfg.StaticPath)
	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	r.GET("/", func(c *gin.Context) {
		p.render(c, "index.html", gin.H{})
	})

	r.GET("/call", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/call/"+string(domain.NewSessionID()))
	})

	r.GET("/call/:call_id", func(c *gin.Context) {
		p.render(c, "call.html", gin.H{"call_id": c.Param("call_id")})
	})

	r.GET("/stream", func(c *gin.Context) {
		id := domain.NewSessionID()
		if err := rememberStream(sessions.Default(c), id); err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("save session")
		}
		c.Redirect(http.StatusFound, "/stream/"+string(id)+"?streamer=true")
	})

	r.GET("/stream/:stream_id", func(c *gin.Context) {
		id := c.Param("stream_id")
		streamer := c.Query("streamer") == "true" || slices.Contains(ownedStreams(sessions.Default(c)), id)
		p.render(c, "stream.html", gin.H{"stream_id": id, "streamer": streamer})
	})

	r.GET("/ws", func(c *gin.Context) {
		ctl.HandleSignal(ctx, c)
	})

	api := r.Group("/api")

	api.GET("/ice-servers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ice_servers": cfg.WebRTCICEServers()})
	})

	api.GET("/sessions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"calls":   ctl.Orch.Calls.List(),
			"streams": ctl.Orch.Streams.List(),
		})
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}
