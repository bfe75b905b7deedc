package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/imagewriter"
	"github.com/df07/go-whitted-raytracer/pkg/logging"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/web/server"
)

const (
	appName   = "raytracer"
	scenesDir = "scenes"
	envFile   = ".env"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Whitted-style ray tracer",
		Long: `Renders scenes of planes, spheres, triangles, tubes and cylinders with
Phong lighting, transparent shadows, recursive reflection and refraction,
adaptive anti-aliasing and depth of field.

Settings come from defaults, an optional YAML config file, RAYTRACER_*
environment variables (also read from .env) and flags, in that order.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(newRenderCmd(), newScenesCmd(), newServeCmd())
	return root
}

// loadConfig reads the configuration, letting the given flags override their config keys
func loadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, zerolog.Logger, error) {
	file, _ := cmd.Flags().GetString("config")

	flags := map[string]*pflag.Flag{}
	keys["log.level"] = "log-level"
	for key, name := range keys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			flags[key] = f
		}
	}

	cfg, err := config.Load(config.LoadOptions{File: file, EnvFile: envFile, Flags: flags})
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

// createScene resolves a built-in scene name or the path of a YAML scene file
func createScene(nameOrPath string) (*scene.Setup, error) {
	if nameOrPath == "" {
		return nil, errorsmod.Wrap(core.ErrUnknownScene, "no scene given")
	}
	switch strings.ToLower(filepath.Ext(nameOrPath)) {
	case ".yaml", ".yml":
		return scene.LoadFile(nameOrPath)
	}
	return scene.Create(nameOrPath)
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [scene or file.yaml]",
		Short: "Render a scene to an image file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().Int("width", 0, "Image width in pixels (default: the scene's)")
	cmd.Flags().Int("height", 0, "Image height in pixels (default: the scene's)")
	cmd.Flags().Int("workers", 0, "Parallel workers (0 = one per CPU)")
	cmd.Flags().String("out", "", "Output directory")
	cmd.Flags().String("format", "", "Output format: png, jpg, gif, tif or bmp")
	cmd.Flags().Int("aa", -1, "Anti-aliasing grid size (0 or 1 disables)")
	cmd.Flags().Float64("aperture", -1, "Aperture radius for depth of field (0 disables)")
	cmd.Flags().Float64("focal", 0, "Focal distance for depth of field")
	cmd.Flags().Int("grid", 0, "Overlay a grid line every n pixels")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, map[string]string{
		"render.workers": "workers",
		"output.dir":     "out",
		"output.format":  "format",
	})
	if err != nil {
		return err
	}

	name := "default"
	if len(args) == 1 {
		name = args[0]
	}
	setup, err := createScene(name)
	if err != nil {
		logger.Error().Err(err).Str("scene", name).Msg("Cannot load scene")
		return err
	}

	width, height := setup.Width, setup.Height
	if w, _ := cmd.Flags().GetInt("width"); w > 0 {
		width = w
	}
	if h, _ := cmd.Flags().GetInt("height"); h > 0 {
		height = h
	}

	cameraConfig := setup.Camera
	if aa, _ := cmd.Flags().GetInt("aa"); aa >= 0 {
		cameraConfig.AntiAliasing.GridSize = aa
	}
	if aperture, _ := cmd.Flags().GetFloat64("aperture"); aperture >= 0 {
		cameraConfig.DepthOfField.ApertureSize = aperture
	}
	if focal, _ := cmd.Flags().GetFloat64("focal"); focal > 0 {
		cameraConfig.DepthOfField.FocalDistance = focal
	}
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return err
	}

	coreLogger := logging.NewAdapter(logger, zerolog.InfoLevel)
	options := imagewriter.Options{
		Dir:          cfg.Output.Dir,
		Format:       cfg.Output.Format,
		ResizeWidth:  cfg.Output.ResizeWidth,
		ResizeHeight: cfg.Output.ResizeHeight,
		Logger:       coreLogger,
	}
	if cfg.S3.Enabled {
		client, err := imagewriter.NewS3Client(cfg.S3.Region, cfg.S3.Endpoint)
		if err != nil {
			return err
		}
		options.Publisher = imagewriter.NewPublisher(client, cfg.S3.Bucket, cfg.S3.Prefix, coreLogger)
	}

	sink := imagewriter.New(outputName(setup.Scene.Name, name), width, height, options)
	camera.SetImageSink(sink).
		SetRayTracer(renderer.NewBasicRayTracer(setup.Scene, cfg.Tracer())).
		SetRenderConfig(cfg.Parallelism()).
		SetLogger(coreLogger)

	logger.Info().Str("scene", setup.Scene.Name).Int("width", width).Int("height", height).Msg("Starting render")
	stats, err := camera.RenderImage(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info().
		Dur("elapsed", stats.Elapsed).
		Int("primary_rays", stats.PrimaryRays).
		Float64("rays_per_pixel", stats.AverageRaysPerPixel()).
		Msg("Render finished")

	if grid, _ := cmd.Flags().GetInt("grid"); grid > 0 {
		if err := camera.PrintGrid(grid, core.NewColor(255, 255, 255)); err != nil {
			return err
		}
	}
	return camera.WriteToImage(cmd.Context())
}

// outputName names the image after the scene, falling back to what the user asked for
func outputName(sceneName, requested string) string {
	if sceneName != "" {
		return strings.ReplaceAll(strings.ToLower(sceneName), " ", "-")
	}
	return strings.TrimSuffix(filepath.Base(requested), filepath.Ext(requested))
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes and the scene files in ./scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := scene.ListAll(scenesDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, info := range scenes {
				id := info.ID
				if info.Type == "file" {
					id = info.FilePath
				}
				fmt.Fprintf(out, "  %-24s %s\n", id, info.Description)
			}
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, map[string]string{"server.port": "port"})
			if err != nil {
				return err
			}
			logger.Info().Msgf("Visit http://localhost:%d/api/scenes to list scenes", cfg.Server.Port)
			err = server.NewServer(cfg, logger, scenesDir).Start(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().Int("port", 0, "Port to serve on")
	return cmd
}
