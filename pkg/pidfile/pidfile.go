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

// Package pidfile records the running forecaster process in the work home.
package pidfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// PIDFile stores the process ID and cmdline of a running process.
type PIDFile struct {
	path    string
	pid     int
	cmdline string
}

// IsProcessExists reports whether the process recorded in path is still
// running with the same cmdline.
func IsProcessExists(path string) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	content := strings.TrimSpace(string(b))
	index := strings.LastIndex(content, "@")
	if index == -1 {
		return false, errors.New("pid file content is invalid")
	}

	pid, err := strconv.Atoi(content[index+1:])
	if err != nil {
		return false, errors.Wrap(err, "pid file content is invalid")
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		// gopsutil returns ErrorProcessNotRunning for a stale pid.
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return false, nil
		}
		return false, err
	}

	cmdline, _ := p.Cmdline()
	return fmt.Sprintf("%s@%d", strings.TrimSpace(cmdline), pid) == content, nil
}

// New writes the current process into path. It fails when another live
// forecaster already owns the file.
func New(path string) (*PIDFile, error) {
	if ok, _ := IsProcessExists(path); ok {
		return nil, errors.Errorf("process already exists, see %s", path)
	}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	cmdline, _ := p.Cmdline()
	cmdline = strings.TrimSpace(cmdline)
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%s@%d", cmdline, p.Pid)), 0644); err != nil {
		return nil, err
	}

	return &PIDFile{path: path, pid: int(p.Pid), cmdline: cmdline}, nil
}

// Path returns the file location.
func (pf *PIDFile) Path() string {
	return pf.path
}

// Remove removes the PIDFile.
func (pf *PIDFile) Remove() error {
	if err := os.Remove(pf.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
