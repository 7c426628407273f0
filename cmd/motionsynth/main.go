// motionsynth - procedural skeletal motion synthesis for posed avatars
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/normanking/motionsynth/internal/config"
	"github.com/normanking/motionsynth/internal/export"
	"github.com/normanking/motionsynth/internal/logging"
	"github.com/normanking/motionsynth/internal/motion"
	"github.com/normanking/motionsynth/internal/pose"
	"github.com/normanking/motionsynth/internal/server"
	"github.com/normanking/motionsynth/internal/skeleton"
)

var (
	cfg    *config.Config
	syslog *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "motionsynth",
	Short: "Synthesize organic multi-bone animation clips from a static pose",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		syslog, err = logging.New(&logging.Config{
			LogDir:  cfg.Log.Dir,
			Level:   logging.LogLevel(cfg.Log.Level),
			Console: cfg.Log.Console,
		})
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if syslog != nil {
			syslog.Close()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a clip and write it to disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := syslog.Component("generate")

		motionType, _ := cmd.Flags().GetString("motion")
		posePath, _ := cmd.Flags().GetString("pose")
		out, _ := cmd.Flags().GetString("out")

		mc := cfg.Motion.ToMotion()
		if v, _ := cmd.Flags().GetFloat64("duration"); v > 0 {
			mc.Duration = v
		}
		if v, _ := cmd.Flags().GetFloat64("fps"); v > 0 {
			mc.FPS = v
		}
		if v, _ := cmd.Flags().GetFloat64("frequency"); v > 0 {
			mc.Frequency = v
		}
		if cmd.Flags().Changed("energy") {
			mc.Energy, _ = cmd.Flags().GetFloat64("energy")
		}
		if cmd.Flags().Changed("noise") {
			mc.NoiseScale, _ = cmd.Flags().GetFloat64("noise")
		}
		if cmd.Flags().Changed("core-coupling") {
			mc.CoreCoupling, _ = cmd.Flags().GetFloat64("core-coupling")
		}
		if v, _ := cmd.Flags().GetString("emotion"); v != "" {
			mc.Emotion = motion.Emotion(v)
		}
		mc.UseTableLimits, _ = cmd.Flags().GetBool("table-limits")

		basePose := motion.Pose{}
		if posePath != "" {
			data, err := os.ReadFile(posePath)
			if err != nil {
				return fmt.Errorf("read pose file: %w", err)
			}
			basePose, err = pose.Parse(data)
			if err != nil {
				return err
			}
		}

		clip, err := motion.New(nil).Generate(basePose, motion.MotionType(motionType), mc)
		if err != nil {
			return err
		}

		if out == "" {
			if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
				return err
			}
			ext := cfg.Output.Format
			if ext == "gltf" || ext == "glb" {
				out = filepath.Join(cfg.Output.Dir, clip.Name+"."+ext)
			} else {
				out = filepath.Join(cfg.Output.Dir, clip.Name+".json")
			}
		}

		switch {
		case strings.HasSuffix(out, ".gltf"), strings.HasSuffix(out, ".glb"):
			err = export.WriteGLTF(clip, out)
		default:
			err = export.WriteClipJSON(clip, out)
		}
		if err != nil {
			return err
		}

		log.Info().
			Str("motion", motionType).
			Int("tracks", len(clip.Tracks)).
			Str("out", out).
			Msg("clip written")
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the websocket preview server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := syslog.Component("server")

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		var library *pose.Library
		if _, err := os.Stat(cfg.Poses.Dir); err == nil {
			library, err = pose.NewLibrary(cfg.Poses.Dir, syslog.Component("poses"))
			if err != nil {
				return err
			}
			defer library.Close()
			if cfg.Poses.Watch {
				if err := library.Watch(); err != nil {
					log.Warn().Err(err).Msg("pose watcher unavailable")
				}
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(motion.New(nil), library, cfg.Motion.ToMotion(), log)
		return srv.Run(ctx, addr)
	},
}

var bonesCmd = &cobra.Command{
	Use:   "bones",
	Short: "List the humanoid bone vocabulary and track paths",
	Run: func(cmd *cobra.Command, args []string) {
		tables := skeleton.NewTables()
		for _, bone := range skeleton.AllBones() {
			key := "-"
			if k, ok := tables.ResolveLimitKey(bone); ok {
				key = string(k)
			}
			fmt.Printf("%-24s %-22s %s\n", bone, skeleton.TrackPath(bone), key)
		}
	},
}

func init() {
	generateCmd.Flags().String("motion", "idle", "motion type: wave|idle|breath|point|shrug|nod|shake")
	generateCmd.Flags().String("pose", "", "base pose JSON file")
	generateCmd.Flags().String("out", "", "output path (.json, .gltf or .glb)")
	generateCmd.Flags().Float64("duration", 0, "clip duration in seconds")
	generateCmd.Flags().Float64("fps", 0, "samples per second")
	generateCmd.Flags().Float64("frequency", 0, "base oscillation frequency")
	generateCmd.Flags().Float64("energy", 1.0, "amplitude multiplier")
	generateCmd.Flags().Float64("noise", 1.0, "secondary jitter multiplier")
	generateCmd.Flags().Float64("core-coupling", 1.0, "spine coupling multiplier")
	generateCmd.Flags().String("emotion", "", "idle emotion: neutral|happy|sad|alert|tired|nervous")
	generateCmd.Flags().Bool("table-limits", false, "clamp to table joint limits instead of the safety envelope only")

	serveCmd.Flags().String("addr", "", "listen address (default from config)")

	rootCmd.AddCommand(generateCmd, serveCmd, bonesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
