package override

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visakit/visarepr/pkg/facts"
	"github.com/visakit/visarepr/pkg/repr"
)

func mustFacts(t *testing.T, values map[string]string) *facts.Table {
	t.Helper()
	f, err := facts.New(values)
	require.NoError(t, err)
	return f
}

func TestParse_BareToken(t *testing.T) {
	o, err := Parse(repr.ViStatus, "i32")
	require.NoError(t, err)
	require.Len(t, o.Entries, 1)
	assert.Nil(t, o.Entries[0].Cond, "bare token is the unconditional entry")
	assert.Equal(t, repr.I32, o.Entries[0].Repr)
	assert.Equal(t, "VISA_REPR_VISTATUS", o.Var)
}

func TestParse_ConditionalList(t *testing.T) {
	o, err := Parse(repr.ViStatus, `target_os = "windows":i32,target_os = "linux":i64`)
	require.NoError(t, err)
	require.Len(t, o.Entries, 2)

	r, ok := o.Match(mustFacts(t, map[string]string{facts.KeyOS: "windows"}))
	require.True(t, ok)
	assert.Equal(t, repr.I32, r)

	r, ok = o.Match(mustFacts(t, map[string]string{facts.KeyOS: "linux"}))
	require.True(t, ok)
	assert.Equal(t, repr.I64, r)

	// No catch-all segment: macos matches nothing.
	_, ok = o.Match(mustFacts(t, map[string]string{facts.KeyOS: "macos"}))
	assert.False(t, ok)
}

func TestParse_CatchAllSegment(t *testing.T) {
	o, err := Parse(repr.ViAttr, `target_os = "windows":u32,u64`)
	require.NoError(t, err)
	require.Len(t, o.Entries, 2)

	r, ok := o.Match(mustFacts(t, map[string]string{facts.KeyOS: "macos"}))
	require.True(t, ok)
	assert.Equal(t, repr.U64, r)
}

func TestParse_FirstMatchWins(t *testing.T) {
	o, err := Parse(repr.ViAttr, `any():u32,target_os = "linux":u64`)
	require.NoError(t, err)

	r, ok := o.Match(mustFacts(t, map[string]string{facts.KeyOS: "linux"}))
	require.True(t, ok)
	assert.Equal(t, repr.U32, r, "entries are scanned in listed order")
}

func TestParse_CommasInsideConditions(t *testing.T) {
	o, err := Parse(repr.ViEvent, `all(target_os = "linux", target_pointer_width = "64"):u64,u32`)
	require.NoError(t, err)
	require.Len(t, o.Entries, 2)

	r, ok := o.Match(mustFacts(t, map[string]string{facts.KeyOS: "linux", facts.KeyPointerWidth: "64"}))
	require.True(t, ok)
	assert.Equal(t, repr.U64, r)

	r, ok = o.Match(mustFacts(t, map[string]string{facts.KeyOS: "linux", facts.KeyPointerWidth: "32"}))
	require.True(t, ok)
	assert.Equal(t, repr.U32, r)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"bad bare token", "int32"},
		{"bad repr in segment", `target_os = "linux":long`},
		{"bad condition", `target_os == "linux":i64`},
		{"unknown condition key", `target_vendor = "ni":i64`},
		{"empty condition", `:i64`},
		{"trailing comma", `i32,`},
		{"unterminated quote", `target_os = "linux:i64`},
		{"unbalanced paren", `all(target_os = "linux":i64`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(repr.ViStatus, tt.raw)
			require.Error(t, err)

			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, "VISA_REPR_VISTATUS", synErr.Var)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VISA_REPR_VISTATUS", "i32")
	t.Setenv("VISA_REPR_VIATTR", `target_os = "windows":u32,u64`)
	t.Setenv("VISA_REPR_VIEVENT", "not-a-repr")
	t.Setenv("VISA_REPR_CONFIG_PATH", "/etc/visa_repr.yaml")

	set, errs := FromEnv(repr.Required())

	require.Len(t, errs, 1, "one malformed variable must surface as one error")
	var synErr *SyntaxError
	require.ErrorAs(t, errs[0], &synErr)
	assert.Equal(t, "VISA_REPR_VIEVENT", synErr.Var)

	require.Contains(t, set, repr.ViStatus)
	require.Contains(t, set, repr.ViAttr)
	assert.NotContains(t, set, repr.ViEvent, "malformed overrides are not half-kept")
	assert.NotContains(t, set, repr.ViUInt16, "unset variables produce no override")

	// The reserved path variable is not an override for any type.
	assert.Len(t, set, 2)
}

func TestConfigPathFromEnv(t *testing.T) {
	t.Setenv("VISA_REPR_CONFIG_PATH", "  /abs/visa_repr.yaml  ")
	assert.Equal(t, "/abs/visa_repr.yaml", ConfigPathFromEnv())

	t.Setenv("VISA_REPR_CONFIG_PATH", "")
	assert.Equal(t, "", ConfigPathFromEnv())
}
