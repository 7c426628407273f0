// Package export serializes synthesized clips for downstream players:
// a three.js AnimationClip-compatible JSON form and a glTF 2.0 document
// with the clip as a node animation.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/normanking/motionsynth/internal/motion"
)

// ClipJSON renders the clip as indented JSON. Track targets keep the
// `<node>.quaternion` / `<node>.position` naming the animation player
// binds against.
func ClipJSON(clip *motion.Clip) ([]byte, error) {
	data, err := json.MarshalIndent(clip, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode clip %q: %w", clip.Name, err)
	}
	return data, nil
}

// WriteClipJSON writes the JSON form to path.
func WriteClipJSON(clip *motion.Clip, path string) error {
	data, err := ClipJSON(clip)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write clip %q: %w", clip.Name, err)
	}
	return nil
}
