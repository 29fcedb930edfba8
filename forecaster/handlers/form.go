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
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesforecast/forecaster/forecaster/middlewares"
	"github.com/salesforecast/forecaster/forecaster/schema"
	"github.com/salesforecast/forecaster/forecaster/service"
)

// FormTemplateName is the template rendering the forecast form.
const FormTemplateName = "index.html"

//go:embed templates/*.html
var templatesFS embed.FS

// Templates returns the html templates of handlers.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// formInput describes how a schema field is presented in the form.
type formInput struct {
	Label   string
	Group   string
	Default string
}

const (
	groupExternal   = "External Features"
	groupDate       = "Date Features"
	groupHistorical = "Historical/Lag Features"
	groupOther      = "Features"
)

var formInputs = map[string]formInput{
	"Price":              {Label: "Price ($)", Group: groupExternal, Default: "35.0"},
	"Discount":           {Label: "Discount (%)", Group: groupExternal, Default: "10"},
	"Competitor Pricing": {Label: "Competitor Pricing ($)", Group: groupExternal, Default: "34.0"},
	"Demand Forecast":    {Label: "Demand Forecast (Model Output)", Group: groupExternal, Default: "150.0"},
	"Holiday/Promotion":  {Label: "Holiday/Promotion (1=Yes, 0=No)", Group: groupExternal, Default: "1"},
	"dayofweek":          {Label: "Day of Week (0=Monday, 6=Sunday)", Group: groupDate, Default: "1"},
	"dayofyear":          {Label: "Day of Year (1-365)", Group: groupDate, Default: "120"},
	"weekofyear":         {Label: "Week of Year (1-52)", Group: groupDate, Default: "17"},
	"month":              {Label: "Month (1-12)", Group: groupDate, Default: "4"},
	"year":               {Label: "Year", Group: groupDate, Default: "2025"},
	"lag_1":              {Label: "Lag 1 (Units Sold Yesterday)", Group: groupHistorical, Default: "15000"},
	"lag_7":              {Label: "Lag 7 (Units Sold 7 Days Ago)", Group: groupHistorical, Default: "14500"},
	"lag_30":             {Label: "Lag 30 (Units Sold 30 Days Ago)", Group: groupHistorical, Default: "16000"},
	"rolling_mean_7":     {Label: "Rolling Mean 7 (Avg. Units Sold over last 7 days)", Group: groupHistorical, Default: "15200"},
}

type formField struct {
	Name  string
	Label string
	Step  string
	Value string
}

type formGroup struct {
	Name   string
	Fields []formField
}

type formPage struct {
	Groups []formGroup
	Result *int64
	Error  string
}

// newFormPage lays out the schema fields in schema order, grouped by
// consecutive group. Submitted values take precedence over defaults.
func newFormPage(s *schema.Schema, values map[string]string) *formPage {
	page := &formPage{}
	if s == nil {
		return page
	}

	for _, field := range s.Fields() {
		input, ok := formInputs[field.Name]
		if !ok {
			input = formInput{Label: field.Name, Group: groupOther}
		}

		value := input.Default
		if v, ok := values[field.Name]; ok {
			value = v
		}

		step := "1"
		if field.Kind == schema.KindFloat {
			step = "0.01"
		}

		if len(page.Groups) == 0 || page.Groups[len(page.Groups)-1].Name != input.Group {
			page.Groups = append(page.Groups, formGroup{Name: input.Group})
		}

		group := &page.Groups[len(page.Groups)-1]
		group.Fields = append(group.Fields, formField{
			Name:  field.Name,
			Label: input.Label,
			Step:  step,
			Value: value,
		})
	}

	return page
}

// GetForm renders the forecast form.
func (h *Handlers) GetForm(ctx *gin.Context) {
	if !h.service.Ready() {
		ctx.HTML(http.StatusServiceUnavailable, FormTemplateName, &formPage{Error: "Sales forecast model could not be loaded."})
		return
	}

	ctx.HTML(http.StatusOK, FormTemplateName, newFormPage(h.service.Schema(), nil))
}

// SubmitForm predicts from the form submission and renders the form again
// with either the forecast or the error message.
func (h *Handlers) SubmitForm(ctx *gin.Context) {
	raw, err := bindSubmission(ctx)
	if err != nil {
		page := newFormPage(h.service.Schema(), nil)
		page.Error = err.Error()
		ctx.HTML(http.StatusUnprocessableEntity, FormTemplateName, page)
		return
	}

	page := newFormPage(h.service.Schema(), raw)
	forecast, err := h.service.Forecast(ctx.Request.Context(), raw)
	if err != nil {
		page.Error = err.Error()
		ctx.HTML(middlewares.StatusOf(service.KindOf(err)), FormTemplateName, page)
		return
	}

	page.Result = &forecast.Units
	ctx.HTML(http.StatusOK, FormTemplateName, page)
}
