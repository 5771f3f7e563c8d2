// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/urfave/negroni/v3"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/seats"
)

type StageServer struct {
	config     *config.Config
	store      seats.Store
	httpServer *http.Server
	promServer *http.Server
	running    atomic.Bool
	doneChan   chan struct{}
	closedChan chan struct{}
}

func NewStageServer(conf *config.Config,
	seatService *SeatService,
	tokenService *TokenService,
	keyProvider auth.KeyProvider,
	store seats.Store,
) (*StageServer, error) {
	s := &StageServer{
		config:     conf,
		store:      store,
		doneChan:   make(chan struct{}),
		closedChan: make(chan struct{}),
	}

	middlewares := []negroni.Handler{
		// always the first
		negroni.NewRecovery(),
		cors.New(cors.Options{
			AllowOriginFunc: func(origin string) bool {
				return allowOrigin(conf.Server.CORSOrigins, origin)
			},
			AllowedHeaders: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		}),
	}
	if keyProvider != nil {
		middlewares = append(middlewares, NewAPIKeyAuthMiddleware(keyProvider))
	}

	mux := http.NewServeMux()
	seatService.SetupRoutes(mux)
	tokenService.SetupRoutes(mux)
	mux.HandleFunc("GET /", s.healthCheck)

	if conf.Prometheus.Port > 0 {
		promMux := http.NewServeMux()
		promMux.Handle("/metrics", promhttp.Handler())
		s.promServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", conf.Prometheus.Port),
			Handler: promMux,
		}
	} else {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	s.httpServer = &http.Server{
		Handler: configureMiddlewares(mux, middlewares...),
	}
	return s, nil
}

func (s *StageServer) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *StageServer) IsRunning() bool {
	return s.running.Load()
}

// Start listens on every bind address and blocks until Stop is called.
func (s *StageServer) Start() error {
	if s.running.Swap(true) {
		return ErrAlreadyRunning
	}
	defer close(s.closedChan)

	addresses := s.config.Server.BindAddresses
	if len(addresses) == 0 {
		addresses = []string{""}
	}
	listeners := make([]net.Listener, 0, len(addresses))
	for _, addr := range addresses {
		ln, err := net.Listen("tcp", net.JoinHostPort(addr, strconv.Itoa(int(s.config.Server.Port))))
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			s.running.Store(false)
			return err
		}
		listeners = append(listeners, ln)
	}

	var promLn net.Listener
	if s.promServer != nil {
		ln, err := net.Listen("tcp", s.promServer.Addr)
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			s.running.Store(false)
			return err
		}
		promLn = ln
	}

	logger.Infow("starting stage server",
		"port", s.config.Server.Port,
		"bindAddresses", addresses,
		"redis", s.config.Redis.IsConfigured(),
		"seats", s.config.Seats.Count,
	)
	for _, ln := range listeners {
		go func(ln net.Listener) {
			if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
				logger.Errorw("could not serve", err, "address", ln.Addr().String())
			}
		}(ln)
	}

	if promLn != nil {
		go func() {
			if err := s.promServer.Serve(promLn); err != nil && err != http.ErrServerClosed {
				logger.Errorw("could not serve prometheus", err)
			}
		}()
	}

	<-s.doneChan

	// wait for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.httpServer.Shutdown(ctx)
	if s.promServer != nil {
		_ = s.promServer.Shutdown(ctx)
	}
	return nil
}

func (s *StageServer) Stop() {
	if !s.running.Swap(false) {
		return
	}
	close(s.doneChan)
	<-s.closedChan
}

func (s *StageServer) healthCheck(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	// a store round trip tells load balancers whether seats can be served
	if _, err := s.store.LoadSeats(r.Context(), "_health"); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func allowOrigin(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func configureMiddlewares(handler http.Handler, middlewares ...negroni.Handler) *negroni.Negroni {
	n := negroni.New()
	for _, m := range middlewares {
		n.Use(m)
	}
	n.UseHandler(handler)
	return n
}
