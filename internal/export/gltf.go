package export

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/normanking/motionsynth/internal/motion"
)

// BuildGLTF assembles a glTF 2.0 document holding the clip as one
// animation over a flat node set, one node per animated bone. Values
// are written as float32, the narrowest type glTF animations accept.
func BuildGLTF(clip *motion.Clip) (*gltf.Document, error) {
	doc := &gltf.Document{
		Asset: gltf.Asset{
			Version:   "2.0",
			Generator: "motionsynth",
		},
	}

	anim := &gltf.Animation{Name: clip.Name}
	var buf []byte
	nodeIdx := make(map[string]int)

	node := func(name string) int {
		if idx, ok := nodeIdx[name]; ok {
			return idx
		}
		idx := len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:     name,
			Rotation: [4]float64{0, 0, 0, 1},
			Scale:    [3]float64{1, 1, 1},
		})
		nodeIdx[name] = idx
		return idx
	}

	for i := range clip.Tracks {
		track := &clip.Tracks[i]
		target, path, err := splitTarget(track.Name)
		if err != nil {
			return nil, err
		}

		input := addAccessor(doc, &buf, track.Times, gltf.AccessorScalar, true)
		accType := gltf.AccessorVec4
		if track.Type == motion.TrackVector {
			accType = gltf.AccessorVec3
		}
		output := addAccessor(doc, &buf, track.Values, accType, false)

		sampler := len(anim.Samplers)
		anim.Samplers = append(anim.Samplers, &gltf.AnimationSampler{
			Input:         input,
			Output:        output,
			Interpolation: gltf.InterpolationLinear,
		})
		anim.Channels = append(anim.Channels, &gltf.AnimationChannel{
			Sampler: sampler,
			Target: gltf.AnimationChannelTarget{
				Node: gltf.Index(node(target)),
				Path: path,
			},
		})
	}

	sceneNodes := make([]int, len(doc.Nodes))
	for i := range sceneNodes {
		sceneNodes[i] = i
	}
	doc.Scenes = []*gltf.Scene{{Name: clip.Name, Nodes: sceneNodes}}
	doc.Scene = gltf.Index(0)
	doc.Animations = []*gltf.Animation{anim}
	doc.Buffers = []*gltf.Buffer{{ByteLength: len(buf), Data: buf}}

	return doc, nil
}

// WriteGLTF saves the clip as .glb (binary) or .gltf with an embedded
// data-URI buffer, chosen by extension.
func WriteGLTF(clip *motion.Clip, path string) error {
	doc, err := BuildGLTF(clip)
	if err != nil {
		return fmt.Errorf("build gltf for clip %q: %w", clip.Name, err)
	}
	if strings.HasSuffix(path, ".glb") {
		return gltf.SaveBinary(doc, path)
	}
	doc.Buffers[0].EmbeddedResource()
	return gltf.Save(doc, path)
}

func splitTarget(name string) (string, gltf.TRSProperty, error) {
	switch {
	case strings.HasSuffix(name, ".quaternion"):
		return strings.TrimSuffix(name, ".quaternion"), gltf.TRSRotation, nil
	case strings.HasSuffix(name, ".position"):
		return strings.TrimSuffix(name, ".position"), gltf.TRSTranslation, nil
	}
	return "", 0, fmt.Errorf("track %q targets no known channel", name)
}

// addAccessor appends float32 data to the shared buffer and registers a
// bufferView/accessor pair, returning the accessor index. Animation
// input accessors require min/max.
func addAccessor(doc *gltf.Document, buf *[]byte, values []float64, accType gltf.AccessorType, withBounds bool) int {
	offset := len(*buf)
	data := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(float32(v)))
	}
	*buf = append(*buf, data...)

	comps := 1
	switch accType {
	case gltf.AccessorVec3:
		comps = 3
	case gltf.AccessorVec4:
		comps = 4
	}

	viewIdx := len(doc.BufferViews)
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: len(data),
	})

	acc := &gltf.Accessor{
		BufferView:    gltf.Index(viewIdx),
		ComponentType: gltf.ComponentFloat,
		Count:         len(values) / comps,
		Type:          accType,
	}
	if withBounds && len(values) > 0 {
		lo, hi := values[0], values[0]
		for _, v := range values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		acc.Min = []float64{float64(float32(lo))}
		acc.Max = []float64{float64(float32(hi))}
	}

	accIdx := len(doc.Accessors)
	doc.Accessors = append(doc.Accessors, acc)
	return accIdx
}
