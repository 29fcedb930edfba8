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

package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-http-utils/headers"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"

	logger "github.com/salesforecast/forecaster/internal/fclog"
	"github.com/salesforecast/forecaster/forecaster/handlers"
	"github.com/salesforecast/forecaster/forecaster/middlewares"
	"github.com/salesforecast/forecaster/forecaster/service"
)

const (
	PrometheusSubsystemName = "sales_forecaster_http"
)

func Init(verbose bool, service service.Service) *gin.Engine {
	// Set mode.
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	h := handlers.New(service)

	// Prometheus metrics.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// URL removes query string.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.Request.URL.Path
	}
	p.Use(r)

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, headers.Accept, middlewares.HeaderRequestID)
	corsConfig.ExposeHeaders = []string{middlewares.HeaderRequestID}

	// Middleware
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Error())
	r.Use(cors.New(corsConfig))

	// Forecast view.
	r.Use(static.Serve(handlers.AssetsPrefix, handlers.Assets()))
	r.SetHTMLTemplate(handlers.Templates())
	r.GET("/", h.GetForm)
	r.POST("/predict", h.SubmitForm)

	// Router
	apiv1 := r.Group("/api/v1")

	// Forecast
	f := apiv1.Group("/forecasts")
	f.POST("", h.CreateForecast)

	// Health Check
	r.GET("/healthy", h.GetHealth)

	// Unknown routes
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middlewares.ErrorResponse{
			Kind:    "NotFound",
			Message: http.StatusText(http.StatusNotFound),
		})
	})

	return r
}
