package motion

// MotionType selects which gesture solver shapes the clip.
type MotionType string

const (
	MotionWave   MotionType = "wave"
	MotionIdle   MotionType = "idle"
	MotionBreath MotionType = "breath"
	MotionPoint  MotionType = "point"
	MotionShrug  MotionType = "shrug"
	MotionNod    MotionType = "nod"
	MotionShake  MotionType = "shake"
)

// Emotion tags the idle/breath solver variant. Other solvers ignore it,
// except that "nervous" also boosts noise globally.
type Emotion string

const (
	EmotionNeutral Emotion = "neutral"
	EmotionHappy   Emotion = "happy"
	EmotionSad     Emotion = "sad"
	EmotionAlert   Emotion = "alert"
	EmotionTired   Emotion = "tired"
	EmotionNervous Emotion = "nervous"
)

// Config is the tunable synthesis request. Zero values for Duration,
// FPS and Frequency are replaced by defaults at generation time; the
// multiplier fields are taken literally (zero means none), so start from
// DefaultConfig when the documented defaults are wanted.
type Config struct {
	Duration     float64 // seconds
	FPS          float64 // samples per second
	Frequency    float64 // base oscillation rate, Hz-equivalent
	Energy       float64 // amplitude multiplier, intended 0-2
	NoiseScale   float64 // secondary jitter multiplier
	CoreCoupling float64 // spine/chest share of limb motion
	Emotion      Emotion

	// UseTableLimits switches clamping from the blanket safety envelope
	// to the table-driven joint limits. Off by default: table limits can
	// fight arbitrary caller-supplied base poses, so they are computed
	// but not applied unless asked for.
	UseTableLimits bool
}

// DefaultConfig returns the documented defaults: a 2 second clip at
// 30 fps, base frequency 2.0, all multipliers 1.
func DefaultConfig() Config {
	return Config{
		Duration:     2.0,
		FPS:          30,
		Frequency:    2.0,
		Energy:       1.0,
		NoiseScale:   1.0,
		CoreCoupling: 1.0,
		Emotion:      EmotionNeutral,
	}
}

func (c Config) normalized() Config {
	if c.Duration <= 0 {
		c.Duration = 2.0
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Frequency <= 0 {
		c.Frequency = 2.0
	}
	if c.Emotion == "" {
		c.Emotion = EmotionNeutral
	}
	return c
}

// ValidMotionType reports whether tag names a known gesture solver.
func ValidMotionType(tag MotionType) bool {
	switch tag {
	case MotionWave, MotionIdle, MotionBreath, MotionPoint, MotionShrug, MotionNod, MotionShake:
		return true
	}
	return false
}

// ValidEmotion reports whether tag names a known emotion variant.
func ValidEmotion(tag Emotion) bool {
	switch tag {
	case EmotionNeutral, EmotionHappy, EmotionSad, EmotionAlert, EmotionTired, EmotionNervous:
		return true
	}
	return false
}
