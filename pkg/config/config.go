package config

import (
	"errors"
	"io/fs"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// EnvPrefix prefixes every environment override, e.g. RAYTRACER_RENDER_WORKERS
const EnvPrefix = "RAYTRACER"

// ErrInvalidConfig is returned for configuration values that cannot be used
var ErrInvalidConfig = errorsmod.Register(core.Codespace, 40, "invalid configuration")

// Config is the application configuration
type Config struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	S3     S3Config     `yaml:"s3" mapstructure:"s3"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
}

// LogConfig selects log verbosity and encoding
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // zerolog level name
	Format string `yaml:"format" mapstructure:"format"` // "console" or "json"
}

// RenderConfig holds the shading and parallelism settings
type RenderConfig struct {
	Workers  int     `yaml:"workers" mapstructure:"workers"` // 0 = one per CPU
	TileSize int     `yaml:"tile_size" mapstructure:"tile_size"`
	MaxLevel int     `yaml:"max_level" mapstructure:"max_level"`
	MinK     float64 `yaml:"min_k" mapstructure:"min_k"`
}

// OutputConfig controls image files
type OutputConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	Format       string `yaml:"format" mapstructure:"format"`
	ResizeWidth  uint   `yaml:"resize_width" mapstructure:"resize_width"`
	ResizeHeight uint   `yaml:"resize_height" mapstructure:"resize_height"`
}

// S3Config enables publishing rendered images to a bucket
type S3Config struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Bucket   string `yaml:"bucket" mapstructure:"bucket"`
	Region   string `yaml:"region" mapstructure:"region"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
}

// ServerConfig configures the web server
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// Default returns the built-in configuration
func Default() *Config {
	tracer := renderer.DefaultTracerConfig()
	render := renderer.DefaultRenderConfig()
	return &Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Render: RenderConfig{
			Workers:  render.Workers,
			TileSize: render.TileSize,
			MaxLevel: tracer.MaxLevel,
			MinK:     tracer.MinK,
		},
		Output: OutputConfig{Dir: "output", Format: "png"},
		S3:     S3Config{Region: "us-east-1", Prefix: "renders/"},
		Server: ServerConfig{Port: 8080},
	}
}

// LoadOptions tells Load where to look for settings
type LoadOptions struct {
	File    string                 // Optional YAML config file
	EnvFile string                 // Optional .env file loaded into the environment first
	Flags   map[string]*pflag.Flag // Config key → command-line flag overriding it
}

// Load reads the configuration from defaults, the config file, the environment
// and command-line flags, later sources overriding earlier ones.
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errorsmod.Wrapf(ErrInvalidConfig, "load %s: %v", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidConfig, "read config file %s: %v", opts.File, err)
		}
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidConfig, "bind flag %s: %v", flag.Name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidConfig, "decode: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("render.workers", d.Render.Workers)
	v.SetDefault("render.tile_size", d.Render.TileSize)
	v.SetDefault("render.max_level", d.Render.MaxLevel)
	v.SetDefault("render.min_k", d.Render.MinK)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.resize_width", d.Output.ResizeWidth)
	v.SetDefault("output.resize_height", d.Output.ResizeHeight)
	v.SetDefault("s3.enabled", d.S3.Enabled)
	v.SetDefault("s3.bucket", d.S3.Bucket)
	v.SetDefault("s3.region", d.S3.Region)
	v.SetDefault("s3.endpoint", d.S3.Endpoint)
	v.SetDefault("s3.prefix", d.S3.Prefix)
	v.SetDefault("server.port", d.Server.Port)
}

var supportedFormats = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true, "tif": true, "tiff": true, "bmp": true}

// Validate rejects settings that would make a render or the server fail
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return errorsmod.Wrapf(ErrInvalidConfig, "log format %q must be console or json", c.Log.Format)
	}
	if c.Render.Workers < 0 {
		return errorsmod.Wrapf(ErrInvalidConfig, "workers %d must not be negative", c.Render.Workers)
	}
	if c.Render.TileSize <= 0 {
		return errorsmod.Wrapf(ErrInvalidConfig, "tile size %d must be positive", c.Render.TileSize)
	}
	if c.Render.MaxLevel < 1 {
		return errorsmod.Wrapf(ErrInvalidConfig, "max level %d must be at least 1", c.Render.MaxLevel)
	}
	if c.Render.MinK <= 0 || c.Render.MinK >= 1 {
		return errorsmod.Wrapf(ErrInvalidConfig, "min k %g must be in (0, 1)", c.Render.MinK)
	}
	if !supportedFormats[strings.ToLower(c.Output.Format)] {
		return errorsmod.Wrapf(ErrInvalidConfig, "unsupported output format %q", c.Output.Format)
	}
	if c.S3.Enabled && (c.S3.Bucket == "" || c.S3.Region == "") {
		return errorsmod.Wrap(ErrInvalidConfig, "s3 publishing needs a bucket and a region")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errorsmod.Wrapf(ErrInvalidConfig, "server port %d out of range", c.Server.Port)
	}
	return nil
}

// Tracer returns the shading settings for the ray tracer
func (c *Config) Tracer() renderer.TracerConfig {
	return renderer.TracerConfig{MaxLevel: c.Render.MaxLevel, MinK: c.Render.MinK}
}

// Parallelism returns the tiling settings for the camera
func (c *Config) Parallelism() renderer.RenderConfig {
	return renderer.RenderConfig{Workers: c.Render.Workers, TileSize: c.Render.TileSize}
}
