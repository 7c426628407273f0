package pose

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/motionsynth/internal/skeleton"
)

func TestParseQuaternionForm(t *testing.T) {
	p, err := Parse([]byte(`{
		"bones": {
			"rightUpperArm": {"rotation": [0.1, 0.2, 0.3, 0.9]}
		},
		"root": [0, 0.95, 0]
	}`))
	require.NoError(t, err)

	bp, ok := p.Bones[skeleton.RightUpperArm]
	require.True(t, ok)
	require.NotNil(t, bp.Quat)
	assert.Nil(t, bp.Euler)
	assert.Equal(t, [4]float64{0.1, 0.2, 0.3, 0.9}, *bp.Quat)

	require.NotNil(t, p.Root)
	assert.Equal(t, 0.95, p.Root[1])
}

func TestParseEulerForm(t *testing.T) {
	p, err := Parse([]byte(`{
		"bones": {
			"chest": {"x": 10, "y": -5, "z": 2.5},
			"head": {"x": 4}
		}
	}`))
	require.NoError(t, err)

	chest := p.Bones[skeleton.Chest]
	require.NotNil(t, chest.Euler)
	assert.Equal(t, [3]float64{10, -5, 2.5}, *chest.Euler)

	// Missing axes default to zero.
	head := p.Bones[skeleton.Head]
	require.NotNil(t, head.Euler)
	assert.Equal(t, [3]float64{4, 0, 0}, *head.Euler)
}

func TestParseMalformedBoneRejected(t *testing.T) {
	_, err := Parse([]byte(`{"bones": {"head": {"pitch": 4}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "head")
}

func TestParseEmptyDocument(t *testing.T) {
	p, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, p.Bones)
	assert.Nil(t, p.Root)
}

func TestLibraryLoadAndGet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slouch.json"),
		`{"bones": {"chest": {"x": 12}}}`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{"bones": {"chest": 7}}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `ignore me`)

	lib, err := NewLibrary(dir, zerolog.Nop())
	require.NoError(t, err)
	defer lib.Close()

	p, ok := lib.Get("slouch")
	require.True(t, ok)
	assert.NotNil(t, p.Bones[skeleton.Chest].Euler)

	_, ok = lib.Get("broken")
	assert.False(t, ok, "invalid files are skipped, not fatal")
	assert.Equal(t, []string{"slouch"}, lib.Names())
}

func TestLibrarySaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lib, err := NewLibrary(dir, zerolog.Nop())
	require.NoError(t, err)

	doc := &Document{
		Name: "wave-ready",
		Bones: map[string]json.RawMessage{
			"rightHand": json.RawMessage(`{"x": 1, "y": 2, "z": 3}`),
		},
	}
	require.NoError(t, lib.Save("wave-ready", doc))

	p, ok := lib.Get("wave-ready")
	require.True(t, ok)
	assert.Equal(t, [3]float64{1, 2, 3}, *p.Bones[skeleton.RightHand].Euler)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
