package http

import (
	"net/http"

	"github.com/mauv0809/urban-bracket/internal/arena"
	"github.com/mauv0809/urban-bracket/internal/bracket"
	"github.com/mauv0809/urban-bracket/internal/config"
	"github.com/mauv0809/urban-bracket/internal/metrics"
	"github.com/mauv0809/urban-bracket/internal/notifier"
	"github.com/mauv0809/urban-bracket/internal/pubsub"
	"github.com/mauv0809/urban-bracket/internal/queue"
)

func NewServer(store arena.ArenaStore, brackets bracket.Registry, queueSvc queue.QueueService, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Brackets:       brackets,
		Queue:          queueSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/users", Chain(s.UsersHandler(), paramsMiddleware))
	s.Router.Handle("/user", Chain(s.GetUserHandler(), paramsMiddleware))
	s.Router.Handle("/brackets", Chain(s.ListBracketsHandler(), paramsMiddleware))
	s.Router.Handle("/queue/join", Chain(s.JoinQueueHandler(), paramsMiddleware))
	s.Router.Handle("/queue/leave", Chain(s.LeaveQueueHandler(), paramsMiddleware))
	s.Router.Handle("/notify-queue-joined", Chain(s.NotifyQueueJoinedHandler(), paramsMiddleware))
	s.Router.Handle("/notify-queue-left", Chain(s.NotifyQueueLeftHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
