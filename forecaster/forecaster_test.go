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
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phayes/freeport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesforecast/forecaster/forecaster/config"
	"github.com/salesforecast/forecaster/forecaster/gateway"
	"github.com/salesforecast/forecaster/forecaster/models"
	"github.com/salesforecast/forecaster/forecaster/schema"
	"github.com/salesforecast/forecaster/pkg/fcpath"
)

func mockFcpath(t *testing.T) fcpath.Fcpath {
	dir := t.TempDir()
	f, err := fcpath.New(fcpath.WithWorkHome(dir), fcpath.WithLogDir(dir), fcpath.WithDataDir(dir))
	require.NoError(t, err)
	return f
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(cfg *config.Config)
		expect func(t *testing.T, s *Server, err error)
	}{
		{
			name: "new server",
			mock: func(cfg *config.Config) {
				abs, _ := filepath.Abs("./models/testdata/retail_linear.json")
				cfg.Model.ArtifactPath = abs
				cfg.Metrics.Enable = true
			},
			expect: func(t *testing.T, s *Server, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(s.gateway.Ready())
				assert.NotNil(s.metricsServer)
				assert.Equal("0.0.0.0:5000", s.restServer.Addr)
			},
		},
		{
			name: "missing artifact",
			mock: func(cfg *config.Config) {
				cfg.Model.ArtifactPath = "missing.json"
			},
			expect: func(t *testing.T, s *Server, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.Nil(s)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.New()
			assert.NoError(t, cfg.Convert())
			tc.mock(cfg)
			s, err := New(context.Background(), cfg, mockFcpath(t))
			tc.expect(t, s, err)
		})
	}
}

func TestServer_ServeAndStop(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)

	cfg := config.New()
	cfg.Server.ListenIP = net.IPv4(127, 0, 0, 1)
	cfg.Server.Port = port
	cfg.Model.ArtifactPath = "retail.json"
	metricsPort, err := freeport.GetFreePort()
	require.NoError(t, err)
	cfg.Metrics.Addr = fmt.Sprintf("127.0.0.1:%d", metricsPort)

	s, err := New(context.Background(), cfg, mockFcpath(t), gateway.WithLoader(mockRetailLoader))
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Serve())
	}()

	addr := fmt.Sprintf("http://127.0.0.1:%d", port)
	assert.Eventually(t, func() bool {
		resp, err := http.Get(addr + "/healthy")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	body := "Price=1&Discount=1&Competitor Pricing=1&Demand Forecast=1&Holiday/Promotion=0&dayofweek=1&dayofyear=1&weekofyear=1&month=1&year=2025&lag_1=1&lag_7=1&lag_30=1&rolling_mean_7=1"
	resp, err := http.Post(addr+"/api/v1/forecasts", "application/x-www-form-urlencoded", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/metrics", metricsPort))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.Stop()
	wg.Wait()
}

func TestServer_ServeMetricsAddrInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port, err := freeport.GetFreePort()
	require.NoError(t, err)

	cfg := config.New()
	cfg.Server.ListenIP = net.IPv4(127, 0, 0, 1)
	cfg.Server.Port = port
	cfg.Model.ArtifactPath = "retail.json"
	cfg.Metrics.Addr = ln.Addr().String()

	s, err := New(context.Background(), cfg, mockFcpath(t), gateway.WithLoader(mockRetailLoader))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- s.Serve()
	}()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "metrics server closed unexpect")
	case <-time.After(5 * time.Second):
		s.Stop()
		t.Fatal("serve should stop when the metrics server fails")
	}
}

func mockRetailLoader(path string) (models.Predictor, *schema.Schema, error) {
	if filepath.Base(path) != "retail.json" {
		return nil, nil, errors.New("unexpected path")
	}

	return models.NewLinearRegression(schema.Retail().Names(), "Units Sold", 42, make([]float64, schema.Retail().Len())), schema.Retail(), nil
}
