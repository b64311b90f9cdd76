package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/prism/config"
	"github.com/adrianliechti/prism/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config
	http.Handler

	api *api.Handler
}

func New(cfg *config.Config) (*Server, error) {
	h, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	s := &Server{
		Config:  cfg,
		Handler: r,

		api: h,
	}

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		s.api.Attach(r)
	})

	r.Route("/functions/v1", func(r chi.Router) {
		s.api.AttachFunctions(r)
	})

	return s, nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: otelhttp.NewHandler(s.Handler, "prism"),

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		srv.Shutdown(shutdown)
	}()

	slog.Info("server listening", "address", s.Address, "engines", s.Engines())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
