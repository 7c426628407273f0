// Package skeleton defines the humanoid bone vocabulary and the static
// biomechanical tables the motion engine reads at synthesis time.
package skeleton

import "strings"

// BoneID is the canonical name of one joint in the humanoid rig.
type BoneID string

const (
	Hips       BoneID = "hips"
	Spine      BoneID = "spine"
	Chest      BoneID = "chest"
	UpperChest BoneID = "upperChest"
	Neck       BoneID = "neck"
	Head       BoneID = "head"

	LeftShoulder  BoneID = "leftShoulder"
	LeftUpperArm  BoneID = "leftUpperArm"
	LeftLowerArm  BoneID = "leftLowerArm"
	LeftHand      BoneID = "leftHand"
	RightShoulder BoneID = "rightShoulder"
	RightUpperArm BoneID = "rightUpperArm"
	RightLowerArm BoneID = "rightLowerArm"
	RightHand     BoneID = "rightHand"

	LeftUpperLeg  BoneID = "leftUpperLeg"
	LeftLowerLeg  BoneID = "leftLowerLeg"
	LeftFoot      BoneID = "leftFoot"
	LeftToes      BoneID = "leftToes"
	RightUpperLeg BoneID = "rightUpperLeg"
	RightLowerLeg BoneID = "rightLowerLeg"
	RightFoot     BoneID = "rightFoot"
	RightToes     BoneID = "rightToes"
)

// Side identifies which half of the body a bone belongs to.
type Side int

const (
	SideCenter Side = iota
	SideLeft
	SideRight
)

// Class is the precomputed role of a bone, replacing repeated substring
// scans over bone names at sample time.
type Class int

const (
	ClassTorso Class = iota
	ClassHead
	ClassArm
	ClassHand
	ClassFinger
	ClassLeg
	ClassFoot
)

// Finger segments follow the VRM humanoid naming convention:
// thumb has metacarpal/proximal/distal, the other four fingers have
// proximal/intermediate/distal.
var fingerNames = []string{"Thumb", "Index", "Middle", "Ring", "Little"}

var thumbSegments = []string{"Metacarpal", "Proximal", "Distal"}
var fingerSegments = []string{"Proximal", "Intermediate", "Distal"}

// allBones is the full fixed vocabulary, built once. Ordering is stable:
// torso chain, arms, legs, then fingers left-to-right.
var allBones = buildBoneList()

func buildBoneList() []BoneID {
	bones := []BoneID{
		Hips, Spine, Chest, UpperChest, Neck, Head,
		LeftShoulder, LeftUpperArm, LeftLowerArm, LeftHand,
		RightShoulder, RightUpperArm, RightLowerArm, RightHand,
		LeftUpperLeg, LeftLowerLeg, LeftFoot, LeftToes,
		RightUpperLeg, RightLowerLeg, RightFoot, RightToes,
	}
	for _, side := range []string{"left", "right"} {
		for _, finger := range fingerNames {
			segs := fingerSegments
			if finger == "Thumb" {
				segs = thumbSegments
			}
			for _, seg := range segs {
				bones = append(bones, BoneID(side+finger+seg))
			}
		}
	}
	return bones
}

// AllBones returns the complete bone vocabulary in stable order.
func AllBones() []BoneID {
	out := make([]BoneID, len(allBones))
	copy(out, allBones)
	return out
}

// BoneCount is the size of the full humanoid map.
func BoneCount() int { return len(allBones) }

// IsKnown reports whether id belongs to the fixed vocabulary.
func IsKnown(id BoneID) bool {
	_, ok := trackPaths[id]
	return ok
}

// SideOf returns which half of the body the bone belongs to.
func SideOf(id BoneID) Side {
	s := string(id)
	switch {
	case strings.HasPrefix(s, "left"):
		return SideLeft
	case strings.HasPrefix(s, "right"):
		return SideRight
	default:
		return SideCenter
	}
}

// ClassOf returns the precomputed role of a bone. Unknown bones classify
// as torso, which receives no kinematic or synergy corrections.
func ClassOf(id BoneID) Class {
	if c, ok := boneClasses[id]; ok {
		return c
	}
	return ClassTorso
}

var boneClasses = buildClasses()

func buildClasses() map[BoneID]Class {
	classes := make(map[BoneID]Class, len(allBones))
	for _, id := range allBones {
		classes[id] = classify(id)
	}
	return classes
}

func classify(id BoneID) Class {
	s := string(id)
	switch {
	case containsAny(s, "Thumb", "Index", "Middle", "Ring", "Little"):
		return ClassFinger
	case strings.Contains(s, "Hand"):
		return ClassHand
	case strings.Contains(s, "Foot") || strings.Contains(s, "Toes"):
		return ClassFoot
	case strings.Contains(s, "UpperLeg") || strings.Contains(s, "LowerLeg"):
		return ClassLeg
	case containsAny(s, "Shoulder", "UpperArm", "LowerArm"):
		return ClassArm
	case id == Neck || id == Head:
		return ClassHead
	default:
		return ClassTorso
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// trackPaths maps every bone to its scene-addressable node name. The
// names follow the VRoid rig convention (J_Bip_<side>_<segment>).
var trackPaths = buildTrackPaths()

func buildTrackPaths() map[BoneID]string {
	paths := map[BoneID]string{
		Hips:       "J_Bip_C_Hips",
		Spine:      "J_Bip_C_Spine",
		Chest:      "J_Bip_C_Chest",
		UpperChest: "J_Bip_C_UpperChest",
		Neck:       "J_Bip_C_Neck",
		Head:       "J_Bip_C_Head",
	}
	limb := map[string]string{
		"Shoulder": "Shoulder", "UpperArm": "UpperArm", "LowerArm": "LowerArm",
		"Hand": "Hand", "UpperLeg": "UpperLeg", "LowerLeg": "LowerLeg",
		"Foot": "Foot", "Toes": "ToeBase",
	}
	for _, side := range []string{"left", "right"} {
		tag := "L"
		if side == "right" {
			tag = "R"
		}
		for suffix, node := range limb {
			paths[BoneID(side+suffix)] = "J_Bip_" + tag + "_" + node
		}
		for _, finger := range fingerNames {
			segs := fingerSegments
			if finger == "Thumb" {
				segs = thumbSegments
			}
			for si, seg := range segs {
				id := BoneID(side + finger + seg)
				paths[id] = "J_Bip_" + tag + "_" + finger + string(rune('1'+si))
			}
		}
	}
	return paths
}

// TrackPath returns the scene node name a bone's track targets. The
// mapping is total over the vocabulary; unknown bones fall back to their
// own identity so callers always get an addressable name.
func TrackPath(id BoneID) string {
	if p, ok := trackPaths[id]; ok {
		return p
	}
	return string(id)
}
