// Package config provides configuration management for motionsynth
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/normanking/motionsynth/internal/motion"
)

// Config holds all application configuration
type Config struct {
	Poses  PoseConfig   `mapstructure:"poses"`
	Output OutputConfig `mapstructure:"output"`
	Server ServerConfig `mapstructure:"server"`
	Motion MotionConfig `mapstructure:"motion"`
	Log    LogConfig    `mapstructure:"log"`
}

// PoseConfig locates the pose library
type PoseConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

// OutputConfig controls where generated clips land
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"` // json, gltf, glb
}

// ServerConfig configures the preview server
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// MotionConfig carries the default synthesis knobs; CLI flags and
// preview requests override per call.
type MotionConfig struct {
	Duration     float64 `mapstructure:"duration"`
	FPS          float64 `mapstructure:"fps"`
	Frequency    float64 `mapstructure:"frequency"`
	Energy       float64 `mapstructure:"energy"`
	NoiseScale   float64 `mapstructure:"noise_scale"`
	CoreCoupling float64 `mapstructure:"core_coupling"`
	Emotion      string  `mapstructure:"emotion"`
}

// LogConfig configures logging
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
	Console bool   `mapstructure:"console"`
}

// ToMotion converts the configured defaults to an engine config.
func (m MotionConfig) ToMotion() motion.Config {
	return motion.Config{
		Duration:     m.Duration,
		FPS:          m.FPS,
		Frequency:    m.Frequency,
		Energy:       m.Energy,
		NoiseScale:   m.NoiseScale,
		CoreCoupling: m.CoreCoupling,
		Emotion:      motion.Emotion(m.Emotion),
	}
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".motionsynth")
	return &Config{
		Poses: PoseConfig{
			Dir:   filepath.Join(base, "poses"),
			Watch: true,
		},
		Output: OutputConfig{
			Dir:    filepath.Join(base, "clips"),
			Format: "json",
		},
		Server: ServerConfig{
			Addr: "localhost:8765",
		},
		Motion: MotionConfig{
			Duration:     2.0,
			FPS:          30,
			Frequency:    2.0,
			Energy:       1.0,
			NoiseScale:   1.0,
			CoreCoupling: 1.0,
			Emotion:      string(motion.EmotionNeutral),
		},
		Log: LogConfig{
			Level:   "info",
			Dir:     filepath.Join(base, "logs"),
			Console: true,
		},
	}
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return cfg, err
	}

	configDir := filepath.Join(homeDir, ".motionsynth")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return cfg, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MOTIONSYNTH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, err
		}
		// Config file not found, use defaults and create one
		if err := Save(cfg); err != nil {
			return cfg, err
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes the configuration to file
func Save(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(homeDir, ".motionsynth")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	viper.Set("poses", cfg.Poses)
	viper.Set("output", cfg.Output)
	viper.Set("server", cfg.Server)
	viper.Set("motion", cfg.Motion)
	viper.Set("log", cfg.Log)

	configPath := filepath.Join(configDir, "config.yaml")
	return viper.WriteConfigAs(configPath)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".motionsynth"), nil
}
