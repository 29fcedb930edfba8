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

package schema

// retailFields is the feature order the retail sales model was trained on.
var retailFields = []Field{
	{Name: "Price", Kind: KindFloat},
	{Name: "Discount", Kind: KindInteger},
	{Name: "Competitor Pricing", Kind: KindFloat},
	{Name: "Demand Forecast", Kind: KindFloat},
	{Name: "Holiday/Promotion", Kind: KindInteger},
	{Name: "dayofweek", Kind: KindInteger},
	{Name: "dayofyear", Kind: KindInteger},
	{Name: "weekofyear", Kind: KindInteger},
	{Name: "month", Kind: KindInteger},
	{Name: "year", Kind: KindInteger},
	{Name: "lag_1", Kind: KindInteger},
	{Name: "lag_7", Kind: KindInteger},
	{Name: "lag_30", Kind: KindInteger},
	{Name: "rolling_mean_7", Kind: KindFloat},
}

// Retail returns the feature schema of the retail sales forecast model.
func Retail() *Schema {
	s, err := New(retailFields...)
	if err != nil {
		panic(err)
	}

	return s
}
