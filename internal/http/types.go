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

type Server struct {
	Store          arena.ArenaStore
	Brackets       bracket.Registry
	Queue          queue.QueueService
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
