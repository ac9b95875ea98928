package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"taskboard/internal/refresh"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

const shutdownTimeout = 5 * time.Second

// NewServer returns an echo instance with the board routes and request
// logging installed.
func NewServer(svc *refresh.Service, opts Options, logger *log.Logger) (*echo.Echo, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Debug("request")
			return nil
		},
	}))
	if err := Register(e, svc, opts, logger); err != nil {
		return nil, err
	}
	return e, nil
}

// Serve runs the dashboard on addr until ctx is done. The board refreshes
// immediately and then every opts.Interval; the schedule stops with the
// server. An interval of zero refreshes once at startup.
func Serve(ctx context.Context, addr string, svc *refresh.Service, opts Options, logger *log.Logger) error {
	if logger == nil {
		logger = log.StandardLogger()
	}
	e, err := NewServer(svc, opts, logger)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	var wg conc.WaitGroup
	defer wg.Wait()
	defer cancel()

	wg.Go(func() {
		if opts.Interval > 0 {
			svc.RunScheduled(runCtx, opts.Interval)
			return
		}
		_ = svc.Refresh(runCtx)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("serving task board")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-runCtx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
