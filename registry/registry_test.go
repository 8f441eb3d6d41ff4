package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymesh/studymesh/core"
)

func TestNewValidation(t *testing.T) {
	_, err := New("tutor")
	assert.ErrorContains(t, err, "at least one identity")

	_, err = New("tutor", Identity{Name: "tutor"}, Identity{Name: "tutor"})
	assert.ErrorContains(t, err, "duplicate identity")

	_, err = New("missing", Identity{Name: "tutor"})
	assert.ErrorContains(t, err, `general agent "missing" not in catalog`)

	_, err = New("tutor", Identity{Name: ""})
	assert.ErrorContains(t, err, "empty name")
}

func TestRegistryLookups(t *testing.T) {
	r, err := New("b",
		Identity{Name: "c", Tools: []string{core.ToolFindResources}},
		Identity{Name: "a"},
		Identity{Name: "b"},
	)
	require.NoError(t, err)

	id, ok := r.Get("c")
	assert.True(t, ok)
	assert.True(t, id.AllowsTool(core.ToolFindResources))
	assert.False(t, id.AllowsTool(core.ToolCallAgent))

	_, ok = r.Get("nope")
	assert.False(t, ok)
	assert.False(t, r.Has("nope"))

	assert.Equal(t, "b", r.General().Name)

	// List preserves registration order, Names is sorted.
	var listed []string
	for _, id := range r.List() {
		listed = append(listed, id.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, listed)
	assert.Equal(t, []string{"a", "b", "c"}, r.Names())
}

func TestDefaultCatalog(t *testing.T) {
	r := NewDefault()

	assert.Equal(t, GeneralAgent, r.General().Name)
	assert.Equal(t, []string{"coach", "librarian", "planner", "scout", "tutor"}, r.Names())

	tutor, ok := r.Get("tutor")
	require.True(t, ok)
	assert.True(t, tutor.AllowsTool(core.ToolSearchMaterials))
	assert.True(t, tutor.AllowsTool(core.ToolCallAgent))
	assert.False(t, tutor.AllowsTool(core.ToolUpdateSchedule))

	scout, ok := r.Get("scout")
	require.True(t, ok)
	assert.False(t, scout.AllowsTool(core.ToolCallAgent))
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
general: helper
agents:
  - name: helper
    description: General helper.
    instruction: Be helpful.
    tools: [search_materials, call_agent]
  - name: checker
    description: Checks deadlines.
    instruction: Check deadlines.
    tools: [check_calendar]
`)
	r, err := ParseCatalog(data)
	require.NoError(t, err)

	assert.Equal(t, "helper", r.General().Name)
	checker, ok := r.Get("checker")
	require.True(t, ok)
	assert.True(t, checker.AllowsTool(core.ToolCheckCalendar))
}

func TestParseCatalogRejectsUnknownTool(t *testing.T) {
	data := []byte(`
general: helper
agents:
  - name: helper
    tools: [time_travel]
`)
	_, err := ParseCatalog(data)
	assert.ErrorContains(t, err, `unknown tool "time_travel"`)
}

func TestParseCatalogRequiresGeneral(t *testing.T) {
	_, err := ParseCatalog([]byte("agents:\n  - name: helper\n"))
	assert.ErrorContains(t, err, "missing general agent")
}
