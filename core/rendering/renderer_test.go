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

package rendering

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/hesab/core/keypad"
	"github.com/google/hesab/core/locale"
	"github.com/google/hesab/core/query"
	"github.com/google/hesab/core/radix"
	"github.com/google/hesab/core/views"
)

func render(t *testing.T, raw, lang string) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	bundle, err := locale.Load("fa")
	require.NoError(t, err)

	vm := views.BuildCalculatorViewModel(query.NewQuery(u), bundle.Get(lang), keypad.MustDefault(), radix.NewConverter(12), bundle.Languages())
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, vm))
	return buf.String()
}

func TestRenderCalculator(t *testing.T) {
	html := render(t, "/?expr=2%2B3*4", "en")
	assert.Contains(t, html, `dir="ltr"`)
	assert.Contains(t, html, `<div id="result" class="result">14</div>`)
	assert.Contains(t, html, `id="keypad"`)
	assert.Contains(t, html, ">√</a>")
	assert.Contains(t, html, "key=sqrt%28")
	assert.NotContains(t, html, `id="help-panel"`)
	assert.NotContains(t, html, `id="base-status"`)
}

func TestRenderError(t *testing.T) {
	html := render(t, "/?expr=1%2F0", "fa")
	assert.Contains(t, html, `dir="rtl"`)
	assert.Contains(t, html, `<div id="result" class="result error">خطا</div>`)
}

func TestRenderEscapesExpression(t *testing.T) {
	html := render(t, "/?expr=%3Cb%3E", "en")
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, "&lt;b&gt;")
}

func TestRenderConverterAndHelp(t *testing.T) {
	html := render(t, "/?in=ff&from=16&to=10&convert=1&help=1", "en")
	assert.Contains(t, html, `id="base-output" value="255"`)
	assert.Contains(t, html, `<option value="16" selected>16</option>`)
	assert.Contains(t, html, `<option value="10" selected>10</option>`)
	assert.Contains(t, html, `<p id="base-status" class="status">Success</p>`)
	assert.Contains(t, html, `id="help-panel"`)
	assert.Contains(t, html, `name="help" value="1"`)
}

func TestRenderConverterFailure(t *testing.T) {
	html := render(t, "/?in=g&from=16&to=10&convert=1", "fa")
	assert.Contains(t, html, `id="base-output" value=""`)
	assert.Contains(t, html, `class="status error">رقم نامعتبر برای مبنا</p>`)
}
