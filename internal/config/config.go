// Package config holds the startup settings of mapedit.
//
// Settings come from command-line flags, from a configuration file given with
// --config (any format viper reads), or from environment variables named
// MAPEDIT_<key>, for example MAPEDIT_RENDER_TYPE=xy.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mapedit/internal/edit"
	"mapedit/internal/geom"
	"mapedit/internal/proj"
)

// EnvPrefix is prepended to every key to form its environment variable.
const EnvPrefix = "MAPEDIT"

// Projections names the map projections the view can use.
var Projections = []string{"equirect", "mercator"}

// Config is the validated configuration.
type Config struct {
	RenderType           geom.RenderType
	LineType             proj.LineType
	CoordMode            geom.CoordMode
	Projection           string
	ViewRotation         float64 // degrees
	PointRadius          int
	PointOval            bool
	RotationCompensation bool
	LogFile              string
	LogLevel             logrus.Level
}

// Attributes are the settings applied to newly created graphics.
func (c *Config) Attributes() edit.Attributes {
	return edit.Attributes{
		RenderType:           c.RenderType,
		LineType:             c.LineType,
		CoordMode:            c.CoordMode,
		Radius:               c.PointRadius,
		Oval:                 c.PointOval,
		RotationCompensation: c.RotationCompensation,
	}
}

type option struct {
	key, flag, usage string
	defaultVal       interface{}
}

var options = []option{
	{key: "config", flag: "config", usage: "configuration file location", defaultVal: ""},
	{key: "render_type", flag: "render-type", usage: "render type of new graphics: xy, offset or latlon", defaultVal: "latlon"},
	{key: "line_type", flag: "line-type", usage: "line type of new lat/lon graphics: straight, greatcircle or rhumb", defaultVal: "greatcircle"},
	{key: "coord_mode", flag: "coord-mode", usage: "offsets of new offset polylines are taken from the origin or the previous vertex", defaultVal: "origin"},
	{key: "projection", flag: "projection", usage: "map projection: equirect or mercator", defaultVal: "equirect"},
	{key: "view_rotation", flag: "view-rotation", usage: "rotation of the map view, degrees", defaultVal: 0.0},
	{key: "point_radius", flag: "point-radius", usage: "radius of new point markers, pixels", defaultVal: geom.DefaultRadius},
	{key: "point_oval", flag: "point-oval", usage: "draw new point markers as ovals", defaultVal: false},
	{key: "rotation_compensation", flag: "rotation-compensation", usage: "keep new point markers upright when the view rotates", defaultVal: false},
	{key: "log_file", flag: "log-file", usage: "file the log is written to", defaultVal: "mapedit.log"},
	{key: "log_level", flag: "log-level", usage: "log level: debug, info, warn or error", defaultVal: "info"},
}

// New returns a viper instance with every option registered on fs and bound to it.
func New(fs *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for _, o := range options {
		switch d := o.defaultVal.(type) {
		case string:
			fs.String(o.flag, d, o.usage)
		case bool:
			fs.Bool(o.flag, d, o.usage)
		case int:
			fs.Int(o.flag, d, o.usage)
		case float64:
			fs.Float64(o.flag, d, o.usage)
		default:
			panic("config: invalid default for " + o.key)
		}
		v.SetDefault(o.key, o.defaultVal)
		if err := v.BindPFlag(o.key, fs.Lookup(o.flag)); err != nil {
			panic(err)
		}
	}
	return v
}

// Load reads the configuration file, if one is set, and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: problem reading configuration file: %w", err)
		}
	}

	c := &Config{
		ViewRotation:         v.GetFloat64("view_rotation"),
		PointRadius:          v.GetInt("point_radius"),
		PointOval:            v.GetBool("point_oval"),
		RotationCompensation: v.GetBool("rotation_compensation"),
		LogFile:              v.GetString("log_file"),
	}
	var err error
	if c.RenderType, err = geom.ParseRenderType(v.GetString("render_type")); err != nil {
		return nil, fmt.Errorf("config: render_type: %w", err)
	}
	if c.LineType, err = proj.ParseLineType(v.GetString("line_type")); err != nil {
		return nil, fmt.Errorf("config: line_type: %w", err)
	}
	if c.CoordMode, err = geom.ParseCoordMode(v.GetString("coord_mode")); err != nil {
		return nil, fmt.Errorf("config: coord_mode: %w", err)
	}
	if c.LogLevel, err = logrus.ParseLevel(v.GetString("log_level")); err != nil {
		return nil, fmt.Errorf("config: log_level: %w", err)
	}
	c.Projection = strings.ToLower(strings.TrimSpace(v.GetString("projection")))
	if !slices.Contains(Projections, c.Projection) {
		return nil, fmt.Errorf("config: projection: unknown projection %q", c.Projection)
	}
	if c.PointRadius < 1 {
		return nil, fmt.Errorf("config: point_radius must be at least 1, got %d", c.PointRadius)
	}
	return c, nil
}
