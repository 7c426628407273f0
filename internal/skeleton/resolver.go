package skeleton

import "strings"

// ResolveLimitKey maps a bone to its nearest limit-table key. Resolution
// order: exact match, then the "Hand"/"Foot" naming rules, then the
// finger snake_case rule. The second return is false when nothing
// matches; such bones receive the generic safety envelope instead of a
// table limit. Unknown bones are never an error.
func (t *Tables) ResolveLimitKey(bone BoneID) (LimitKey, bool) {
	if key, ok := t.limitKey[bone]; ok {
		return key, true
	}

	name := string(bone)
	if strings.Contains(name, "Hand") {
		return LimitKey("hand" + sideSuffix(bone)), true
	}
	if strings.Contains(name, "Foot") {
		return LimitKey("foot" + sideSuffix(bone)), true
	}

	if key, ok := fingerLimitKey(bone); ok {
		if _, exists := t.limits[key]; exists {
			return key, true
		}
	}
	return "", false
}

// fingerLimitKey strips the side prefix, snake_cases the remainder and
// appends the side suffix: rightIndexProximal -> index_proximal_R.
func fingerLimitKey(bone BoneID) (LimitKey, bool) {
	name := string(bone)
	side := SideOf(bone)
	switch side {
	case SideLeft:
		name = strings.TrimPrefix(name, "left")
	case SideRight:
		name = strings.TrimPrefix(name, "right")
	default:
		return "", false
	}
	if name == "" {
		return "", false
	}
	return LimitKey(snakeCase(name) + sideSuffix(bone)), true
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sideSuffix(bone BoneID) string {
	if SideOf(bone) == SideLeft {
		return "_L"
	}
	return "_R"
}

// CumulativeLag is the effective follow-through delay of a bone in
// seconds: delays accumulate from the hips outward, so distal segments
// trail proximal ones.
func (t *Tables) CumulativeLag(bone BoneID) float64 {
	lag := t.Lag
	switch ClassOf(bone) {
	case ClassTorso:
		if bone == Hips {
			return 0
		}
		return lag.HipsToChest * 0.5
	case ClassHead:
		if bone == Neck {
			return lag.HipsToChest + lag.ChestToHead*0.5
		}
		return lag.HipsToChest + lag.ChestToHead
	case ClassArm:
		base := lag.HipsToChest + lag.ShoulderOffset
		switch {
		case strings.Contains(string(bone), "Shoulder"):
			return base + lag.ShoulderToHand*0.25
		case strings.Contains(string(bone), "UpperArm"):
			return base + lag.ShoulderToHand*0.5
		default: // lower arm
			return base + lag.ShoulderToHand*0.75
		}
	case ClassHand:
		return lag.HipsToChest + lag.ShoulderOffset + lag.ShoulderToHand
	case ClassFinger:
		return lag.HipsToChest + lag.ShoulderOffset + lag.ShoulderToHand + lag.FingerExtra
	case ClassLeg, ClassFoot:
		return lag.HipsToChest * 0.25
	}
	return 0
}
