package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer

	assert.Equal(t, ModeText, NewRenderer(&out, &errOut, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(&out, &errOut, ModeJSON).EffectiveMode())
	assert.Equal(t, ModeText, NewRenderer(&out, &errOut, Mode("bogus")).EffectiveMode())
}

func TestRenderer_PlainWhenPiped(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeAuto)

	r.Successf("resolved %d types", 9)
	r.Errorf("boom")
	r.Notef("using table %s", "bundled")

	assert.Equal(t, "resolved 9 types\n", out.String(), "buffers are not terminals, no escape codes")
	assert.Contains(t, errOut.String(), "boom\n")
	assert.Contains(t, errOut.String(), "using table bundled\n")
}

func TestRenderer_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeJSON)

	require.NoError(t, r.JSON(map[string]string{"ViStatus": "i64"}))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "i64", decoded["ViStatus"])
}
