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

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealth reports 200 once the model is loaded, 503 before.
func (h *Handlers) GetHealth(ctx *gin.Context) {
	if !h.service.Ready() {
		ctx.JSON(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))
		return
	}

	ctx.JSON(http.StatusOK, "OK")
}
