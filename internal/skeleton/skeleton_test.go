package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoneVocabularyIsTotal(t *testing.T) {
	bones := AllBones()
	assert.Equal(t, BoneCount(), len(bones))

	seen := make(map[string]bool)
	for _, id := range bones {
		path := TrackPath(id)
		assert.NotEmpty(t, path, "bone %s has no track path", id)
		assert.False(t, seen[path], "track path %s mapped twice", path)
		seen[path] = true
	}
}

func TestTrackPathConvention(t *testing.T) {
	assert.Equal(t, "J_Bip_C_Hips", TrackPath(Hips))
	assert.Equal(t, "J_Bip_R_UpperArm", TrackPath(RightUpperArm))
	assert.Equal(t, "J_Bip_L_Index1", TrackPath(BoneID("leftIndexProximal")))
	assert.Equal(t, "J_Bip_R_Thumb3", TrackPath(BoneID("rightThumbDistal")))
	assert.Equal(t, "J_Bip_L_ToeBase", TrackPath(LeftToes))
}

func TestTrackPathUnknownBoneFallsBack(t *testing.T) {
	assert.Equal(t, "tail", TrackPath(BoneID("tail")))
}

func TestClassification(t *testing.T) {
	cases := map[BoneID]Class{
		Hips:                           ClassTorso,
		UpperChest:                     ClassTorso,
		Neck:                           ClassHead,
		Head:                           ClassHead,
		LeftShoulder:                   ClassArm,
		RightLowerArm:                  ClassArm,
		RightHand:                      ClassHand,
		BoneID("rightIndexProximal"):   ClassFinger,
		BoneID("leftThumbMetacarpal"):  ClassFinger,
		LeftUpperLeg:                   ClassLeg,
		RightFoot:                      ClassFoot,
		LeftToes:                       ClassFoot,
		BoneID("leftRingIntermediate"): ClassFinger,
	}
	for bone, want := range cases {
		assert.Equal(t, want, ClassOf(bone), "bone %s", bone)
	}
}

func TestSideOf(t *testing.T) {
	assert.Equal(t, SideCenter, SideOf(Hips))
	assert.Equal(t, SideLeft, SideOf(LeftHand))
	assert.Equal(t, SideRight, SideOf(BoneID("rightLittleDistal")))
}

func TestResolveLimitKeyExact(t *testing.T) {
	tables := NewTables()

	key, ok := tables.ResolveLimitKey(RightUpperArm)
	require.True(t, ok)
	assert.Equal(t, LimitKey("upper_arm_R"), key)

	key, ok = tables.ResolveLimitKey(Spine)
	require.True(t, ok)
	assert.Equal(t, LimitKey("spine"), key)

	// upperChest shares the chest entry.
	key, ok = tables.ResolveLimitKey(UpperChest)
	require.True(t, ok)
	assert.Equal(t, LimitKey("chest"), key)
}

func TestResolveLimitKeyHandFootRules(t *testing.T) {
	tables := NewTables()

	key, ok := tables.ResolveLimitKey(LeftHand)
	require.True(t, ok)
	assert.Equal(t, LimitKey("hand_L"), key)

	key, ok = tables.ResolveLimitKey(RightFoot)
	require.True(t, ok)
	assert.Equal(t, LimitKey("foot_R"), key)
}

func TestResolveLimitKeyFingerRule(t *testing.T) {
	tables := NewTables()

	key, ok := tables.ResolveLimitKey(BoneID("rightIndexProximal"))
	require.True(t, ok)
	assert.Equal(t, LimitKey("index_proximal_R"), key)

	key, ok = tables.ResolveLimitKey(BoneID("leftThumbMetacarpal"))
	require.True(t, ok)
	assert.Equal(t, LimitKey("thumb_metacarpal_L"), key)

	entry, found := tables.Limit(key)
	require.True(t, found)
	assert.Less(t, entry.Min[0], entry.Max[0])
}

func TestResolveLimitKeyUnknownBone(t *testing.T) {
	tables := NewTables()

	_, ok := tables.ResolveLimitKey(BoneID("tail"))
	assert.False(t, ok)

	// Toes have no table entry and no naming rule; generic envelope.
	_, ok = tables.ResolveLimitKey(LeftToes)
	assert.False(t, ok)
}

func TestDynamicsFallback(t *testing.T) {
	tables := NewTables()

	hand := tables.Dynamics(RightHand)
	assert.Greater(t, hand.AvgSpeed, 0.0)
	assert.Greater(t, hand.MaxSpeed, hand.AvgSpeed)

	generic := tables.Dynamics(BoneID("tail"))
	assert.Equal(t, 80.0, generic.AvgSpeed)
}

func TestCumulativeLagOrdering(t *testing.T) {
	tables := NewTables()

	hips := tables.CumulativeLag(Hips)
	spine := tables.CumulativeLag(Spine)
	head := tables.CumulativeLag(Head)
	shoulder := tables.CumulativeLag(RightShoulder)
	hand := tables.CumulativeLag(RightHand)
	finger := tables.CumulativeLag(BoneID("rightIndexProximal"))

	assert.Equal(t, 0.0, hips)
	assert.Greater(t, spine, 0.0)
	assert.Greater(t, head, spine)
	assert.Greater(t, hand, shoulder)
	assert.Greater(t, finger, hand)
}

func TestLimitRangesAreClosedIntervals(t *testing.T) {
	tables := NewTables()
	for _, bone := range AllBones() {
		key, ok := tables.ResolveLimitKey(bone)
		if !ok {
			continue
		}
		entry, found := tables.Limit(key)
		require.True(t, found, "resolved key %s has no entry", key)
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, entry.Min[axis], entry.Max[axis],
				"bone %s axis %d", bone, axis)
		}
	}
}
