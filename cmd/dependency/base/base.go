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

package base

// Options is the base options of every command.
type Options struct {
	// Console shows log on console.
	Console bool `yaml:"console" mapstructure:"console"`

	// Verbose prints debug logs and starts the statsview server.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// PProfPort is the port of the statsview server, -1 picks a free port.
	PProfPort int `yaml:"pprof-port" mapstructure:"pprof-port"`
}
