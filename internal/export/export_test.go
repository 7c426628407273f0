package export

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/motionsynth/internal/motion"
)

func sampleClip(t *testing.T) *motion.Clip {
	t.Helper()
	cfg := motion.DefaultConfig()
	cfg.Duration = 0.5
	cfg.FPS = 10
	clip, err := motion.New(nil).Generate(motion.Pose{}, motion.MotionWave, cfg)
	require.NoError(t, err)
	return clip
}

func TestClipJSONShape(t *testing.T) {
	clip := sampleClip(t)

	data, err := ClipJSON(clip)
	require.NoError(t, err)

	var decoded struct {
		Name     string  `json:"name"`
		Duration float64 `json:"duration"`
		Tracks   []struct {
			Name   string    `json:"name"`
			Type   string    `json:"type"`
			Times  []float64 `json:"times"`
			Values []float64 `json:"values"`
		} `json:"tracks"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "wave", decoded.Name)
	assert.Equal(t, 0.5, decoded.Duration)
	require.NotEmpty(t, decoded.Tracks)

	for _, track := range decoded.Tracks {
		stride := 4
		if track.Type == "vector" {
			stride = 3
		}
		assert.Equal(t, len(track.Times)*stride, len(track.Values), "track %s", track.Name)
	}
}

func TestBuildGLTF(t *testing.T) {
	clip := sampleClip(t)

	doc, err := BuildGLTF(clip)
	require.NoError(t, err)

	require.Len(t, doc.Animations, 1)
	anim := doc.Animations[0]
	assert.Equal(t, "wave", anim.Name)

	// One channel per track, one node per bone plus the hips.
	assert.Len(t, anim.Channels, len(clip.Tracks))
	assert.Len(t, anim.Samplers, len(clip.Tracks))
	// Hips carry both a rotation and a translation channel on one node.
	assert.Len(t, doc.Nodes, len(clip.Tracks)-1)

	rotations, translations := 0, 0
	for _, ch := range anim.Channels {
		require.Less(t, ch.Sampler, len(anim.Samplers))
		require.NotNil(t, ch.Target.Node)
		switch ch.Target.Path {
		case gltf.TRSRotation:
			rotations++
		case gltf.TRSTranslation:
			translations++
		}
	}
	assert.Equal(t, len(clip.Tracks)-1, rotations)
	assert.Equal(t, 1, translations)

	require.Len(t, doc.Buffers, 1)
	assert.Equal(t, len(doc.Buffers[0].Data), doc.Buffers[0].ByteLength)

	// Every sampler input accessor carries the bounds glTF requires.
	for _, s := range anim.Samplers {
		require.Less(t, s.Input, len(doc.Accessors))
		in := doc.Accessors[s.Input]
		assert.NotEmpty(t, in.Min)
		assert.NotEmpty(t, in.Max)
	}
}

func TestWriteClipFiles(t *testing.T) {
	clip := sampleClip(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "wave.json")
	require.NoError(t, WriteClipJSON(clip, jsonPath))

	glbPath := filepath.Join(dir, "wave.glb")
	require.NoError(t, WriteGLTF(clip, glbPath))

	// Round-trip the binary form through the reader.
	doc, err := gltf.Open(glbPath)
	require.NoError(t, err)
	assert.Len(t, doc.Animations, 1)
}
