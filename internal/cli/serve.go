package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/searchspace/pkg/buildinfo"
	"github.com/matzehuels/searchspace/pkg/experiment"
)

// serveCommand creates the "serve" command: expose sweeps over an HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		cFlags cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sweeps over an HTTP API",
		Long: `Start an HTTP server exposing the sweep runner. POST a sweep config as
JSON to /v1/sweeps to solve a generated instance with every configured
algorithm; the response is the same report the compare command prints.`,
		Example: `  searchspace serve --addr :8080
  curl -s localhost:8080/v1/sweeps -d '{"problem":{"kind":"assignment","size":8},"algorithms":[{"name":"annealing"}]}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd, cFlags)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newAPIHandler(runner),
				ReadHeaderTimeout: 5 * time.Second,
				BaseContext: func(net.Listener) context.Context {
					return cmd.Context()
				},
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				c.Logger.Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cFlags.register(cmd)

	return cmd
}

// newAPIHandler builds the HTTP API on top of a sweep runner.
func newAPIHandler(runner *experiment.Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
			"date":    buildinfo.Date,
		})
	})

	r.Post("/v1/sweeps", func(w http.ResponseWriter, req *http.Request) {
		var cfg experiment.Config
		if err := json.NewDecoder(req.Body).Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("decode config: %w", err))
			return
		}

		report, err := runner.Run(req.Context(), cfg)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, context.Canceled) {
				status = http.StatusRequestTimeout
			} else if isConfigError(err) {
				status = http.StatusUnprocessableEntity
			}
			writeError(w, status, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	return r
}

// requestLogger logs each request through the logger attached to the server
// base context.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		loggerFromContext(req.Context()).Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(req.Context()))
	})
}

// isConfigError reports whether err stems from sweep config validation.
func isConfigError(err error) bool {
	for _, target := range []error{
		experiment.ErrUnknownKind,
		experiment.ErrUnknownAlgorithm,
		experiment.ErrNoAlgorithms,
		experiment.ErrBadSize,
		experiment.ErrBadEdgeProb,
		experiment.ErrNeedsGoal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
