package docstring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/docstring"
	"github.com/viant/pyapi/model"
)

type stubParser struct {
	calls int
	style docstring.Style
}

func (s *stubParser) Parse(raw string, style docstring.Style) ([]docstring.Section, error) {
	s.calls++
	s.style = style
	return []docstring.Section{{Kind: "text", Body: raw}}, nil
}

func TestDocstringNilHandleIsNoop(t *testing.T) {
	d := docstring.New(nil, &stubParser{})
	assert.Equal(t, "", d.Value())
	start, end := d.LineRange()
	assert.Zero(t, start)
	assert.Zero(t, end)
	sections, err := d.Parse(docstring.StyleAuto)
	require.NoError(t, err)
	assert.Nil(t, sections)
}

func TestDocstringParseCachesResult(t *testing.T) {
	raw := &model.Docstring{Value: "Summary.", LineStart: 3, LineEnd: 4, Style: "google"}
	parser := &stubParser{}
	d := docstring.New(raw, parser)

	start, end := d.LineRange()
	assert.Equal(t, 3, start)
	assert.Equal(t, 4, end)

	sections, err := d.Parse(docstring.StyleAuto)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Summary.", sections[0].Body)
	assert.Equal(t, docstring.Style("google"), parser.style)
	assert.Equal(t, 1, parser.calls)

	_, err = d.Parse(docstring.StyleNumpy)
	require.NoError(t, err)
	assert.Equal(t, 1, parser.calls)
}

func TestDocstringExplicitStyleOverridesStored(t *testing.T) {
	raw := &model.Docstring{Value: "Summary.", Style: "google"}
	parser := &stubParser{}
	d := docstring.New(raw, parser)

	_, err := d.Parse(docstring.StyleSphinx)
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleSphinx, parser.style)
}

func TestDocstringNilParserReturnsNil(t *testing.T) {
	raw := &model.Docstring{Value: "Summary."}
	d := docstring.New(raw, nil)

	sections, err := d.Parse(docstring.StyleAuto)
	require.NoError(t, err)
	assert.Nil(t, sections)
}
