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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/docker/go-units"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/salesforecast/forecaster/forecaster/translator"
)

// defaultMaxMemory is the memory limit of multipart form parsing.
const defaultMaxMemory = 32 * units.MiB

// CreateForecast predicts units sold for a form or json submission.
func (h *Handlers) CreateForecast(ctx *gin.Context) {
	raw, err := bindSubmission(ctx)
	if err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
		return
	}

	forecast, err := h.service.Forecast(ctx.Request.Context(), raw)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, forecast)
}

// bindSubmission reads the request body as raw submission. Json values must be
// strings or numbers, numbers keep their literal text. Form fields keep the
// first value of each key.
func bindSubmission(ctx *gin.Context) (translator.RawSubmission, error) {
	if ctx.ContentType() == binding.MIMEJSON {
		var body map[string]any
		decoder := json.NewDecoder(ctx.Request.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&body); err != nil {
			return nil, fmt.Errorf("invalid json body: %w", err)
		}

		raw := make(translator.RawSubmission, len(body))
		for key, value := range body {
			switch v := value.(type) {
			case string:
				raw[key] = v
			case json.Number:
				raw[key] = v.String()
			default:
				return nil, fmt.Errorf("value of %q must be a string or number", key)
			}
		}

		return raw, nil
	}

	if err := ctx.Request.ParseMultipartForm(defaultMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("invalid form body: %w", err)
	}

	raw := make(translator.RawSubmission, len(ctx.Request.PostForm))
	for key, values := range ctx.Request.PostForm {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}

	return raw, nil
}
