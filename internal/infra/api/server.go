package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"workgate/internal/config"
	"workgate/internal/usecase"
)

// Server wires the checkout HTTP surface to the use cases.
type Server struct {
	orderUC    usecase.OrderUseCase
	checkoutUC usecase.CheckoutUseCase
	sessionUC  usecase.SessionUseCase
	statsUC    usecase.StatsUseCase
	session    config.SessionConfig
	opsKey     string
	redirect   string
	log        *zerolog.Logger
}

func NewServer(
	orderUC usecase.OrderUseCase,
	checkoutUC usecase.CheckoutUseCase,
	sessionUC usecase.SessionUseCase,
	statsUC usecase.StatsUseCase,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		orderUC:    orderUC,
		checkoutUC: checkoutUC,
		sessionUC:  sessionUC,
		statsUC:    statsUC,
		session:    cfg.Session,
		opsKey:     cfg.Ops.APIKey,
		redirect:   cfg.Server.SuccessPath,
		log:        logger,
	}
}

// Router builds the chi router with the shared middleware chain applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/v1/orders", s.handleCreateOrder)
	r.Post("/api/v1/payments/confirm", s.handleConfirm)
	r.Post("/api/v1/logout", s.handleLogout)

	r.Get("/payment/success", s.handleResultPage(true))
	r.Get("/payment/failed", s.handleResultPage(false))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler { return s.opsAuth(next) })
		r.Get("/api/v1/stats", s.handleStats)
	})

	return Chain(r, TraceID(), RequestLog(s.log), Recover(s.log))
}
