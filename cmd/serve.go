package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the question-answering HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: serveRouter(env, rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// serveRouter builds the HTTP surface. The ask endpoint is rate limited
// per client; the read-only endpoints are not.
func serveRouter(env *appEnv, limit rate.Limit, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.With(newClientLimiter(limit, burst).middleware).
		Post("/api/ask", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Question string `json:"question"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if body.Question == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
				return
			}

			ans, err := env.Engine.Answer(req.Context(), body.Question)
			if err != nil {
				zap.L().Error("serve: answer failed",
					zap.String("question", body.Question),
					zap.Error(err),
				)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
				return
			}
			writeJSON(w, http.StatusOK, ans)
		})

	r.Get("/api/classify", func(w http.ResponseWriter, req *http.Request) {
		question := req.URL.Query().Get("q")
		if question == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q parameter is required"})
			return
		}
		writeJSON(w, http.StatusOK, env.Engine.ClassifyIntent(question))
	})

	r.Get("/api/sectors", func(w http.ResponseWriter, req *http.Request) {
		sectors, err := env.Store.ListSectors(req.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sectors": sectors})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		zap.L().Info("serve: request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// clientLimiter keys one rate.Limiter per client address, created lazily,
// so one client exhausting its budget never throttles another.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newClientLimiter(limit rate.Limit, burst int) *clientLimiter {
	return &clientLimiter{
		limiters: map[string]*rate.Limiter{},
		limit:    limit,
		burst:    burst,
	}
}

func (c *clientLimiter) limiter(client string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.limiters[client]
	if !ok {
		l = rate.NewLimiter(c.limit, c.burst)
		c.limiters[client] = l
	}
	return l
}

// middleware rejects requests beyond the client's sustained rate with 429.
// RemoteAddr already reflects X-Forwarded-For via middleware.RealIP.
func (c *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		client, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			client = req.RemoteAddr
		}
		if !c.limiter(client).Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, req)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
