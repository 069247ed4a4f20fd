/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package platform

import (
	"encoding/json"

	"github.com/carverauto/sentinel/pkg/models"
)

// spDisplays is the subset of `system_profiler SPDisplaysDataType -json` we read.
type spDisplays struct {
	GPUs []struct {
		Name     string `json:"_name"`
		Displays []struct {
			Name      string `json:"_name"`
			DisplayID string `json:"_spdisplays_displayID"`
			Main      string `json:"spdisplays_main"`
		} `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

func parseSystemProfilerDisplays(data []byte) ([]models.Display, error) {
	var report spDisplays

	if err := json.Unmarshal(data, &report); err != nil {
		return nil, collectionError(FacetDisplays, err)
	}

	displays := []models.Display{}

	for _, gpu := range report.GPUs {
		for _, d := range gpu.Displays {
			displays = append(displays, models.Display{
				Name:     d.Name,
				DeviceID: d.DisplayID,
				Primary:  d.Main == "spdisplays_yes",
			})
		}
	}

	return displays, nil
}
