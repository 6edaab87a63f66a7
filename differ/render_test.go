package differ_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/differ"
)

func sampleBreakages() []differ.Breakage {
	return []differ.Breakage{
		{
			Kind:        differ.ParameterRemoved,
			OldPath:     "pkg.render",
			NewPath:     "pkg.render",
			Explanation: "parameter count removed",
			File:        "pkg/render.py",
			Line:        12,
		},
	}
}

func withColorDisabled(t *testing.T, fn func()) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	fn()
}

func TestRenderOneline(t *testing.T) {
	withColorDisabled(t, func() {
		var buf bytes.Buffer
		require.NoError(t, differ.Render(&buf, sampleBreakages(), differ.StyleOneline))
		assert.Contains(t, buf.String(), "pkg.render: parameter-removed: parameter count removed")
	})
}

func TestRenderMarkdownTable(t *testing.T) {
	withColorDisabled(t, func() {
		var buf bytes.Buffer
		require.NoError(t, differ.Render(&buf, sampleBreakages(), differ.StyleMarkdown))
		out := buf.String()
		assert.Contains(t, out, "| Kind | Old | New | Location | Explanation |")
		assert.Contains(t, out, "parameter-removed")
		assert.Contains(t, out, "pkg/render.py:12")
	})
}

func TestRenderGitHubAnnotation(t *testing.T) {
	withColorDisabled(t, func() {
		var buf bytes.Buffer
		require.NoError(t, differ.Render(&buf, sampleBreakages(), differ.StyleGitHub))
		assert.Contains(t, buf.String(), "::error file=pkg/render.py,line=12::parameter-removed: parameter count removed")
	})
}

func TestRenderEmptyBreakagesProducesNoOutput(t *testing.T) {
	withColorDisabled(t, func() {
		var buf bytes.Buffer
		require.NoError(t, differ.Render(&buf, nil, differ.StyleOneline))
		assert.Empty(t, buf.String())
	})
}
