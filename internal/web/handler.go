package web

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"time"

	"taskboard/internal/github"
	"taskboard/internal/refresh"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// defaultRefreshTimeout bounds a manual refresh triggered over HTTP.
const defaultRefreshTimeout = 30 * time.Second

// Options configures the board routes.
type Options struct {
	Links  github.Links
	Header Header
	// Interval is the auto-refresh period; the page reloads at the same rate.
	Interval       time.Duration
	RefreshTimeout time.Duration
	Now            func() time.Time
}

type handler struct {
	svc    *refresh.Service
	opts   Options
	tmpl   *template.Template
	logger *log.Logger
}

// Register wires the board routes onto e.
func Register(e *echo.Echo, svc *refresh.Service, opts Options, logger *log.Logger) error {
	tmpl, err := LoadTemplates()
	if err != nil {
		return err
	}
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = defaultRefreshTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	h := &handler{svc: svc, opts: opts, tmpl: tmpl, logger: logger}

	e.JSONSerializer = sonicSerializer{}
	e.GET("/", h.board())
	e.GET("/api/board", h.getBoard())
	e.POST("/api/refresh", h.postRefresh())
	e.GET("/healthz", healthz())
	return nil
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
}

func (h *handler) board() echo.HandlerFunc {
	return func(c echo.Context) error {
		data := NewBoardData(h.svc.Snapshot(), h.opts.Links, h.opts.Header, h.opts.Interval, h.opts.Now())
		var buf bytes.Buffer
		if err := h.tmpl.ExecuteTemplate(&buf, "board.html", data); err != nil {
			h.logger.WithError(err).Error("render board")
			return echo.NewHTTPError(http.StatusInternalServerError, "render failed").SetInternal(err)
		}
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	}
}

func (h *handler) getBoard() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, newBoardResponse(h.svc.Snapshot(), h.opts.Links))
	}
}

// postRefresh runs a refresh and answers with the resulting snapshot. The
// refresh outlives a disconnected client so its result still lands.
func (h *handler) postRefresh() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), h.opts.RefreshTimeout)
		defer cancel()

		status := http.StatusOK
		if err := h.svc.Refresh(ctx); err != nil {
			status = http.StatusBadGateway
		}
		return c.JSON(status, newBoardResponse(h.svc.Snapshot(), h.opts.Links))
	}
}
