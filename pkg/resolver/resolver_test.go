package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visakit/visarepr/pkg/facts"
	"github.com/visakit/visarepr/pkg/override"
	"github.com/visakit/visarepr/pkg/repr"
	"github.com/visakit/visarepr/pkg/table"
)

func mustFacts(t *testing.T, values map[string]string) *facts.Table {
	t.Helper()
	f, err := facts.New(values)
	require.NoError(t, err)
	return f
}

func loadTable(t *testing.T, content string) *table.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visa_repr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	tbl, err := table.LoadFile(path)
	require.NoError(t, err)
	return tbl
}

const completeLinuxOnly = `
platforms:
  - when: target_os = "linux"
    types:
      ViUInt16: u16
      ViInt16: i16
      ViUInt32: u64
      ViInt32: i64
      ViStatus: i64
      ViEvent: u64
      ViEventType: u64
      ViEventFilter: u64
      ViAttr: u64
`

func win64(t *testing.T) *facts.Table {
	return mustFacts(t, map[string]string{facts.KeyOS: "windows", facts.KeyPointerWidth: "64"})
}

func linux64(t *testing.T) *facts.Table {
	return mustFacts(t, map[string]string{facts.KeyOS: "linux", facts.KeyPointerWidth: "64"})
}

func TestResolve_Native(t *testing.T) {
	m, err := Resolve(Inputs{Mode: ModeNative})
	require.NoError(t, err)
	require.Len(t, m, len(repr.Required()))

	assert.Equal(t, repr.U16, m[repr.ViUInt16])
	assert.Equal(t, repr.I16, m[repr.ViInt16])
	// Long-backed types agree in width and differ only in signedness.
	assert.Equal(t, m[repr.ViStatus].Bits(), m[repr.ViAttr].Bits())
	assert.True(t, m[repr.ViStatus].Signed())
	assert.False(t, m[repr.ViAttr].Signed())
}

func TestResolve_CrossBundledDefaults(t *testing.T) {
	m, err := Resolve(Inputs{Mode: ModeCross, Facts: win64(t)})
	require.NoError(t, err)
	assert.Equal(t, repr.I32, m[repr.ViStatus])
	assert.Equal(t, repr.U32, m[repr.ViAttr])
	assert.Equal(t, repr.U16, m[repr.ViUInt16])

	m, err = Resolve(Inputs{Mode: ModeCross, Facts: linux64(t)})
	require.NoError(t, err)
	assert.Equal(t, repr.I64, m[repr.ViStatus])
	assert.Equal(t, repr.U64, m[repr.ViEventFilter])
	assert.Equal(t, repr.I16, m[repr.ViInt16])
}

func TestResolve_CrossTablePrecedence(t *testing.T) {
	// The project table fully replaces the bundled default.
	project := loadTable(t, completeLinuxOnly)
	m, err := Resolve(Inputs{Mode: ModeCross, Facts: linux64(t), Project: project})
	require.NoError(t, err)
	assert.Equal(t, repr.U64, m[repr.ViUInt32])

	// Windows is not covered by the replacement table: bundled defaults
	// must not rescue it.
	_, err = Resolve(Inputs{Mode: ModeCross, Facts: win64(t), Project: project})
	require.Error(t, err)

	// The explicit-path table outranks the project table.
	explicit := loadTable(t, `
platforms:
  - when: any()
    types:
      ViUInt16: u16
      ViInt16: i16
      ViUInt32: u32
      ViInt32: i32
      ViStatus: i32
      ViEvent: u32
      ViEventType: u32
      ViEventFilter: u32
      ViAttr: u32
`)
	m, err = Resolve(Inputs{Mode: ModeCross, Facts: linux64(t), Project: project, Explicit: explicit})
	require.NoError(t, err)
	assert.Equal(t, repr.U32, m[repr.ViUInt32], "explicit table must win over project table")
}

func TestResolve_MissingPlatformMatch(t *testing.T) {
	tbl := loadTable(t, completeLinuxOnly)
	_, err := Resolve(Inputs{Mode: ModeCross, Facts: win64(t), Explicit: tbl})
	require.Error(t, err)

	var missing *MissingPlatformMatchError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Error(), "target_os=windows")

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, len(repr.Required()), "every type reports its failure in one pass")
}

func TestResolve_AmbiguousPlatformMatch(t *testing.T) {
	tbl := loadTable(t, `
platforms:
  - when: target_os = "linux"
    types: &all
      ViUInt16: u16
      ViInt16: i16
      ViUInt32: u64
      ViInt32: i64
      ViStatus: i64
      ViEvent: u64
      ViEventType: u64
      ViEventFilter: u64
      ViAttr: u64
  - when: target_pointer_width = "64"
    types: *all
`)
	_, err := Resolve(Inputs{Mode: ModeCross, Facts: linux64(t), Explicit: tbl})
	require.Error(t, err)

	var ambiguous *AmbiguousPlatformMatchError
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.Conditions, 2)
	assert.Contains(t, ambiguous.Error(), "mutually exclusive")
}

func TestResolve_MissingTypeInMatchedEntry(t *testing.T) {
	tbl := loadTable(t, `
platforms:
  - when: target_os = "linux"
    types:
      ViUInt16: u16
      ViInt16: i16
      ViUInt32: u64
      ViInt32: i64
      ViStatus: i64
      ViEvent: u64
      ViEventType: u64
      ViEventFilter: u64
`)
	_, err := Resolve(Inputs{Mode: ModeCross, Facts: linux64(t), Explicit: tbl})
	require.Error(t, err)

	var missingType *MissingTypeError
	require.ErrorAs(t, err, &missingType)
	assert.Equal(t, repr.ViAttr, missingType.Type)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 1, "the eight covered types must still resolve")
}

func TestResolve_CustomOverrideWins(t *testing.T) {
	o, err := override.Parse(repr.ViStatus, "i32")
	require.NoError(t, err)

	m, err := Resolve(Inputs{
		Mode:      ModeCustom,
		Facts:     linux64(t),
		Overrides: override.Set{repr.ViStatus: o},
	})
	require.NoError(t, err)
	assert.Equal(t, repr.I32, m[repr.ViStatus], "override beats the bundled table's i64")
	assert.Equal(t, repr.U64, m[repr.ViAttr], "uncovered types fall back to the table")
}

func TestResolve_CustomConditionalOverride(t *testing.T) {
	o, err := override.Parse(repr.ViStatus, `target_os = "windows":i32,target_os = "linux":i64`)
	require.NoError(t, err)
	in := Inputs{Mode: ModeCustom, Overrides: override.Set{repr.ViStatus: o}, Types: []repr.TypeName{repr.ViStatus}}

	in.Facts = win64(t)
	m, err := Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, repr.I32, m[repr.ViStatus])

	in.Facts = linux64(t)
	m, err = Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, repr.I64, m[repr.ViStatus])

	in.Facts = mustFacts(t, map[string]string{facts.KeyOS: "macos", facts.KeyPointerWidth: "64"})
	_, err = Resolve(in)
	require.Error(t, err)
	var unmatched *UnmatchedOverrideError
	require.ErrorAs(t, err, &unmatched)
	assert.Equal(t, "VISA_REPR_VISTATUS", unmatched.Var)
}

func TestResolve_CrossCustomIgnoresBundled(t *testing.T) {
	o, err := override.Parse(repr.ViStatus, "i64")
	require.NoError(t, err)

	_, err = Resolve(Inputs{
		Mode:      ModeCrossCustom,
		Facts:     linux64(t),
		Overrides: override.Set{repr.ViStatus: o},
	})
	require.Error(t, err, "types without overrides must not lean on shipped defaults")

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, len(repr.Required())-1)

	var missing *MissingOverrideError
	require.ErrorAs(t, errs[0], &missing)
	assert.Contains(t, missing.Error(), missing.Var, "diagnostic must name the variable to set")
	assert.Contains(t, missing.Error(), "VISA_REPR_CONFIG_PATH")
}

func TestResolve_CrossCustomExplicitTableFallback(t *testing.T) {
	o, err := override.Parse(repr.ViStatus, "i32")
	require.NoError(t, err)
	explicit := loadTable(t, completeLinuxOnly)

	m, err := Resolve(Inputs{
		Mode:      ModeCrossCustom,
		Facts:     linux64(t),
		Overrides: override.Set{repr.ViStatus: o},
		Explicit:  explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, repr.I32, m[repr.ViStatus], "override still outranks the explicit table")
	assert.Equal(t, repr.U64, m[repr.ViEvent])
}

func TestResolve_LegacyNativeFallback(t *testing.T) {
	in := Inputs{
		Mode:                 ModeCrossCustom,
		Facts:                linux64(t),
		Types:                []repr.TypeName{repr.ViUInt16},
		LegacyNativeFallback: true,
	}
	m, err := Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, repr.U16, m[repr.ViUInt16])

	in.LegacyNativeFallback = false
	_, err = Resolve(in)
	require.Error(t, err)
}

func TestResolve_Idempotent(t *testing.T) {
	o, err := override.Parse(repr.ViAttr, `target_os = "linux":u64,u32`)
	require.NoError(t, err)
	in := Inputs{Mode: ModeCustom, Facts: linux64(t), Overrides: override.Set{repr.ViAttr: o}}

	first, err := Resolve(in)
	require.NoError(t, err)
	second, err := Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolvedMap_Ordered(t *testing.T) {
	m, err := Resolve(Inputs{Mode: ModeCross, Facts: linux64(t)})
	require.NoError(t, err)
	assert.Equal(t, repr.Required(), m.Ordered())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "native", ModeNative.String())
	assert.Equal(t, "cross-compile", ModeCross.String())
	assert.Equal(t, "custom", ModeCustom.String())
	assert.Equal(t, "cross-compile+custom", ModeCrossCustom.String())
}
