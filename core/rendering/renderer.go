/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package rendering renders view models to HTML.
package rendering

import (
	"embed"
	"io"

	"github.com/google/safehtml/template"

	"github.com/google/hesab/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// Renderer handles rendering of calculator view models to HTML
type Renderer struct {
	calculatorTemplate *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	calculatorTemplate, err := template.New("calculator.html").ParseFS(trustedFS, "templates/calculator.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		calculatorTemplate: calculatorTemplate,
	}, nil
}

// Render renders a CalculatorViewModel to the provided writer
func (r *Renderer) Render(w io.Writer, vm views.CalculatorViewModel) error {
	return r.calculatorTemplate.Execute(w, vm)
}
