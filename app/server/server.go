// Copyright (c) tkc17.

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/tkc17/iw-parser/metric"
	"github.com/tkc17/iw-parser/util"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig carries the server wiring.
type HTTPServerConfig struct {
	Addr          string
	MaxConns      int
	Collector     CollectorState
	Store         SampleStore
	Hub           *Hub
	Authenticator *Authenticator
}

// HTTPServer serves the agent API, the metrics endpoint and the
// WebSocket sample stream.
type HTTPServer struct {
	addr       net.Addr
	httpServer *http.Server
	hub        *Hub
}

// Addr returns the bound listen address.
func (server *HTTPServer) Addr() string {
	return server.addr.String()
}

// NewHTTPServer starts the HTTP server with the given wiring. The
// /healthz and /metrics endpoints stay open while /api/v1 requires a
// token when an authenticator is configured.
func NewHTTPServer(ctx context.Context, serverConfig *HTTPServerConfig) (*HTTPServer, error) {
	if serverConfig.Collector == nil {
		return nil, errors.New("Collector is required for the HTTP server")
	}
	handler := &apiHandler{collector: serverConfig.Collector, store: serverConfig.Store}
	router := mux.NewRouter()
	router.Use(PanicHandler)
	router.Use(correlationHandler)
	router.Use(MetricHandler)
	router.HandleFunc("/healthz", handler.HandleHealthz).Methods(http.MethodGet)
	router.Handle("/metrics", metric.GetInstance().HTTPHandler()).Methods(http.MethodGet)
	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	if serverConfig.Authenticator != nil {
		apiRouter.Use(serverConfig.Authenticator.Middleware)
	}
	apiRouter.HandleFunc("/info", handler.HandleInfo).Methods(http.MethodGet)
	apiRouter.HandleFunc("/stations", handler.HandleStations).Methods(http.MethodGet)
	apiRouter.HandleFunc("/samples", handler.HandleSamples).Methods(http.MethodGet)
	if serverConfig.Hub != nil {
		apiRouter.HandleFunc("/stream", serverConfig.Hub.HandleStream).Methods(http.MethodGet)
	}
	listener, err := net.Listen("tcp", serverConfig.Addr)
	if err != nil {
		util.FileLogger().Errorf(ctx, "Failed to listen to %s - %s", serverConfig.Addr, err.Error())
		return nil, err
	}
	if serverConfig.MaxConns > 0 {
		listener = netutil.LimitListener(listener, serverConfig.MaxConns)
	}
	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := &HTTPServer{
		addr:       listener.Addr(),
		httpServer: httpServer,
		hub:        serverConfig.Hub,
	}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			util.FileLogger().Errorf(ctx, "Failed to run HTTP server - %s", err.Error())
		}
	}()
	return server, nil
}

// Stop drains the subscribers and shuts the server down gracefully.
func (server *HTTPServer) Stop() {
	if server.hub != nil {
		server.hub.Close()
	}
	if server.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.httpServer.Shutdown(ctx); err != nil {
			util.FileLogger().Errorf(ctx, "Failed to shut down HTTP server - %s", err.Error())
		}
	}
	server.httpServer = nil
}

// correlationHandler propagates the request id header into the context
// so request logs carry it.
func correlationHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(util.RequestIdHeader)
		if requestId == "" {
			requestId = util.NewUUID().String()
		}
		ctx := util.WithCorrelationID(r.Context(), requestId)
		w.Header().Set(util.RequestIdHeader, requestId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
