// Package pose loads base-pose documents and keeps a hot-reloading
// library of named poses on disk.
package pose

import (
	"encoding/json"
	"fmt"

	"github.com/normanking/motionsynth/internal/motion"
	"github.com/normanking/motionsynth/internal/skeleton"
)

// Document is the on-disk pose format. Each bone entry is either
// {"rotation": [x, y, z, w]} or {"x": .., "y": .., "z": ..} in degrees.
type Document struct {
	Name  string                     `json:"name,omitempty"`
	Bones map[string]json.RawMessage `json:"bones"`
	Root  *[3]float64                `json:"root,omitempty"`
}

type quatEntry struct {
	Rotation *[4]float64 `json:"rotation"`
}

type eulerEntry struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

// Parse decodes a pose document into the engine's input form. A bone
// entry that is neither a quaternion nor an Euler triple is a caller
// error and rejected here rather than silently becoming identity motion.
func Parse(data []byte) (motion.Pose, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return motion.Pose{}, fmt.Errorf("decode pose document: %w", err)
	}
	return doc.ToPose()
}

// ToPose converts the document's raw bone entries.
func (d *Document) ToPose() (motion.Pose, error) {
	p := motion.Pose{Root: d.Root}
	if len(d.Bones) == 0 {
		return p, nil
	}
	p.Bones = make(map[skeleton.BoneID]motion.BonePose, len(d.Bones))

	for name, raw := range d.Bones {
		bp, err := parseBone(raw)
		if err != nil {
			return motion.Pose{}, fmt.Errorf("bone %q: %w", name, err)
		}
		p.Bones[skeleton.BoneID(name)] = bp
	}
	return p, nil
}

func parseBone(raw json.RawMessage) (motion.BonePose, error) {
	var q quatEntry
	if err := json.Unmarshal(raw, &q); err == nil && q.Rotation != nil {
		return motion.BonePose{Quat: q.Rotation}, nil
	}

	var e eulerEntry
	if err := json.Unmarshal(raw, &e); err == nil && (e.X != nil || e.Y != nil || e.Z != nil) {
		triple := [3]float64{}
		if e.X != nil {
			triple[0] = *e.X
		}
		if e.Y != nil {
			triple[1] = *e.Y
		}
		if e.Z != nil {
			triple[2] = *e.Z
		}
		return motion.BonePose{Euler: &triple}, nil
	}

	return motion.BonePose{}, fmt.Errorf("entry is neither a rotation quaternion nor an euler triple")
}
