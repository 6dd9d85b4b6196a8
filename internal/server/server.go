package server

import (
	"fmt"
	"net/http"
	"time"

	"hive2mqtt/internal/config"

	"github.com/asynkron/protoactor-go/actor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
)

type Server struct {
	port            uint
	httpLog         bool
	rootContext     *actor.RootContext
	masterActor     *actor.PID
	hiveActor       *actor.PID
	metricsRegistry *prometheus.Registry
}

func NewServer(cfg config.Config, rootContext *actor.RootContext, masterActor *actor.PID, hiveActor *actor.PID,
	metricsRegistry *prometheus.Registry) *http.Server {
	NewServer := &Server{
		port:            cfg.Port,
		rootContext:     rootContext,
		masterActor:     masterActor,
		hiveActor:       hiveActor,
		httpLog:         cfg.HttpLog,
		metricsRegistry: metricsRegistry,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
