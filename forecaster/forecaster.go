/*
 *     Copyright 2025 The Forecaster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package forecaster

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	logger "github.com/salesforecast/forecaster/internal/fclog"
	"github.com/salesforecast/forecaster/forecaster/config"
	"github.com/salesforecast/forecaster/forecaster/gateway"
	"github.com/salesforecast/forecaster/forecaster/metrics"
	"github.com/salesforecast/forecaster/forecaster/router"
	"github.com/salesforecast/forecaster/forecaster/service"
	"github.com/salesforecast/forecaster/pkg/fcpath"
)

const (
	gracefulStopTimeout = 10 * time.Second
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Model gateway.
	gateway gateway.Gateway

	// REST server.
	restServer *http.Server

	// Metrics server.
	metricsServer *http.Server
}

func New(ctx context.Context, cfg *config.Config, f fcpath.Fcpath, options ...gateway.Option) (*Server, error) {
	s := &Server{config: cfg}

	// Initialize gateway, the model must be loaded before serving.
	artifactPath := f.Resolve(cfg.Model.ArtifactPath)
	s.gateway = gateway.New(options...)
	log := logger.WithModel(artifactPath)
	metrics.LoadModelCount.WithLabelValues(artifactPath).Inc()
	if err := s.gateway.Load(artifactPath); err != nil {
		metrics.LoadModelFailureCount.WithLabelValues(artifactPath).Inc()
		log.Errorf("load model failed: %s", err.Error())
		return nil, err
	}
	log.Infof("model loaded with %d features", s.gateway.Schema().Len())

	// Initialize REST server.
	s.restServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.ListenIP.String(), strconv.Itoa(cfg.Server.Port)),
		Handler: router.Init(cfg.Verbose, service.New(s.gateway)),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	// Initialize metrics.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

func (s *Server) Serve() error {
	eg := errgroup.Group{}

	// Started metrics server.
	if s.metricsServer != nil {
		eg.Go(func() error {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			return s.listenAndServe("metrics", s.metricsServer)
		})
	}

	// Started REST server.
	eg.Go(func() error {
		logger.Infof("started rest server at %s", s.restServer.Addr)
		return s.listenAndServe("rest", s.restServer)
	})

	return eg.Wait()
}

// listenAndServe stops every server once svr exits without being asked to.
func (s *Server) listenAndServe(name string, svr *http.Server) error {
	if err := svr.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			return nil
		}

		logger.Errorf("%s server closed unexpect: %s", name, err.Error())
		s.Stop()
		return fmt.Errorf("%s server closed unexpect: %w", name, err)
	}

	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulStopTimeout)
	defer cancel()

	// Stop REST server.
	if err := s.restServer.Shutdown(ctx); err != nil {
		logger.Errorf("rest server failed to stop: %s", err.Error())
	} else {
		logger.Info("rest server closed under request")
	}

	// Stop metrics server.
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		} else {
			logger.Info("metrics server closed under request")
		}
	}
}
