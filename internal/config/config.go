// Package config handles editor configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all editor settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Brush   BrushConfig   `yaml:"brush"`
	Vertex  VertexConfig  `yaml:"vertex"`
	Surface SurfaceConfig `yaml:"surface"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial orbit camera placement and projection.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"` // radians
	Yaw      float32 `yaml:"yaw"`   // radians
	FovY     float32 `yaml:"fov_y"` // degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// BrushConfig holds the brush applied on drag.
type BrushConfig struct {
	Type          string  `yaml:"type"`
	Radius        float32 `yaml:"radius"`
	RaiseStep     float32 `yaml:"raise_step"`
	IndicatorLift float32 `yaml:"indicator_lift"`
}

// VertexConfig holds per-vertex pick settings.
type VertexConfig struct {
	Radius       float32 `yaml:"radius"`        // selection reach added to the brush radius
	MarkerRadius float32 `yaml:"marker_radius"` // visual sphere size
}

// SurfaceConfig describes the plane created when no saved mesh is loaded.
type SurfaceConfig struct {
	Width        float32 `yaml:"width"`
	Depth        float32 `yaml:"depth"`
	Subdivisions uint32  `yaml:"subdivisions"`
}

// DataConfig holds mesh file paths.
type DataConfig struct {
	MeshPath      string `yaml:"mesh_path"`
	LoadMesh      bool   `yaml:"load_mesh"` // start from MeshPath when it exists
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Midgard Terraform",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Distance: 14,
			Pitch:    0.9,
			Yaw:      0.785,
			FovY:     45,
			Near:     0.1,
			Far:      500,
		},
		Brush: BrushConfig{
			Type:          "heights",
			Radius:        1.0,
			RaiseStep:     0.5,
			IndicatorLift: 1.0,
		},
		Vertex: VertexConfig{
			Radius:       1.0,
			MarkerRadius: 0.1,
		},
		Surface: SurfaceConfig{
			Width:        10,
			Depth:        10,
			Subdivisions: 8,
		},
		Data: DataConfig{
			MeshPath:      "assets/meshes/mesh_serialized.yaml",
			LoadMesh:      false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the editor cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Brush.Radius < 0 {
		errs = append(errs, fmt.Errorf("brush radius %v must not be negative", c.Brush.Radius))
	}
	if c.Vertex.Radius < 0 {
		errs = append(errs, fmt.Errorf("vertex radius %v must not be negative", c.Vertex.Radius))
	}
	if c.Surface.Width <= 0 || c.Surface.Depth <= 0 {
		errs = append(errs, fmt.Errorf("surface size %vx%v must be positive", c.Surface.Width, c.Surface.Depth))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip range [%v, %v] is invalid", c.Camera.Near, c.Camera.Far))
	}
	return errors.Join(errs...)
}
