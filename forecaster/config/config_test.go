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

package config

import (
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/salesforecast/forecaster/cmd/dependency/base"
)

func TestConfig_Load(t *testing.T) {
	config := &Config{
		Options: base.Options{
			Console:   true,
			Verbose:   true,
			PProfPort: -1,
		},
		Network: NetworkConfig{
			EnableIPv6: true,
		},
		Server: ServerConfig{
			ListenIP:      net.ParseIP("0.0.0.0"),
			Port:          8080,
			LogDir:        "foo",
			LogMaxSize:    512,
			LogMaxAge:     5,
			LogMaxBackups: 3,
			DataDir:       "foo",
		},
		Model: ModelConfig{
			ArtifactPath: "/var/lib/forecaster/retail_sales_model.json",
		},
		Metrics: MetricsConfig{
			Enable: true,
			Addr:   ":8000",
		},
	}

	forecasterConfigYAML := &Config{}
	contentYAML, _ := os.ReadFile("./testdata/forecaster.yaml")
	if err := yaml.Unmarshal(contentYAML, &forecasterConfigYAML); err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)
	assert.EqualValues(config, forecasterConfigYAML)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		mock   func(cfg *Config)
		expect func(t *testing.T, err error)
	}{
		{
			name:   "valid config",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "server requires parameter listenIP",
			config: New(),
			mock:   func(cfg *Config) {},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "server requires parameter listenIP")
			},
		},
		{
			name:   "server requires parameter port",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Server.Port = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "server requires parameter port")
			},
		},
		{
			name:   "server requires parameter logMaxSize",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Server.LogMaxSize = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "server requires parameter logMaxSize")
			},
		},
		{
			name:   "model requires parameter artifactPath",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Model.ArtifactPath = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model requires parameter artifactPath")
			},
		},
		{
			name:   "metrics requires parameter addr",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.IPv4zero
				cfg.Metrics.Enable = true
				cfg.Metrics.Addr = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "metrics requires parameter addr")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mock(tc.config)
			tc.expect(t, tc.config.Validate())
		})
	}
}

func TestConfig_Convert(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(cfg *Config)
		expect func(t *testing.T, cfg *Config)
	}{
		{
			name: "convert listenIP to ipv4",
			mock: func(cfg *Config) {},
			expect: func(t *testing.T, cfg *Config) {
				assert := assert.New(t)
				assert.Equal(net.IPv4zero, cfg.Server.ListenIP)
			},
		},
		{
			name: "convert listenIP to ipv6",
			mock: func(cfg *Config) {
				cfg.Network.EnableIPv6 = true
			},
			expect: func(t *testing.T, cfg *Config) {
				assert := assert.New(t)
				assert.Equal(net.IPv6zero, cfg.Server.ListenIP)
			},
		},
		{
			name: "keep listenIP",
			mock: func(cfg *Config) {
				cfg.Server.ListenIP = net.ParseIP("127.0.0.1")
			},
			expect: func(t *testing.T, cfg *Config) {
				assert := assert.New(t)
				assert.Equal(net.ParseIP("127.0.0.1"), cfg.Server.ListenIP)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mock(cfg)
			assert.NoError(t, cfg.Convert())
			tc.expect(t, cfg)
		})
	}
}
