package galaxy

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the tunables of a simulation run.
type Config struct {
	Step        float64 // fixed per-tick increment for headless drivers, seconds
	LabelOffset float64 // added above VisualSize for the label anchor

	Camera struct {
		Distance    float64
		MinDistance float64
		MaxDistance float64
	}

	Bodies []*Body
}

// DefaultConfig returns the built-in configuration: the default body table
// and a camera that can see all of it.
func DefaultConfig() Config {
	c := Config{Step: 1.0 / 60, LabelOffset: 0.5, Bodies: DefaultBodies()}
	c.Camera.Distance = 100
	c.Camera.MinDistance = 10
	c.Camera.MaxDistance = 400
	return c
}

// LoadConfig reads galaxy.toml from the provided directory, overriding the
// defaults. Any malformed body definition surfaces later as a *ConfigError
// from NewRegistry.
func LoadConfig(dir string) (Config, error) {
	conf := DefaultConfig()
	v := viper.New()
	v.SetConfigName("galaxy")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return conf, fmt.Errorf("%s/galaxy.toml: %s", dir, err)
	}

	if v.IsSet("step") {
		conf.Step = v.GetFloat64("step")
	}
	if v.IsSet("label_offset") {
		conf.LabelOffset = v.GetFloat64("label_offset")
	}
	if v.IsSet("camera.distance") {
		conf.Camera.Distance = v.GetFloat64("camera.distance")
	}
	if v.IsSet("camera.min_distance") {
		conf.Camera.MinDistance = v.GetFloat64("camera.min_distance")
	}
	if v.IsSet("camera.max_distance") {
		conf.Camera.MaxDistance = v.GetFloat64("camera.max_distance")
	}

	if v.IsSet("bodies") {
		raw := []map[string]interface{}{}
		if err := v.UnmarshalKey("bodies", &raw); err != nil {
			return conf, err
		}
		bodies := make([]*Body, 0, len(raw))
		for _, entry := range raw {
			b, err := bodyFromMap(entry)
			if err != nil {
				return conf, err
			}
			bodies = append(bodies, b)
		}
		conf.Bodies = bodies
	}
	return conf, nil
}

func bodyFromMap(entry map[string]interface{}) (*Body, error) {
	name, _ := entry["name"].(string)
	if name == "" {
		return nil, &ConfigError{Body: "", Reason: "body without a name"}
	}
	kindName, _ := entry["kind"].(string)
	kind, err := BodyKindFromString(kindName)
	if err != nil {
		return nil, &ConfigError{Body: name, Reason: err.Error()}
	}
	return NewBody(name,
		asFloat(entry["semi_major_axis"]),
		asFloat(entry["eccentricity"]),
		asFloat(entry["angular_speed"]),
		asFloat(entry["spin_rate"]),
		asFloat(entry["visual_size"]),
		kind,
		asFloat(entry["phase"])), nil
}

func asFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return 0
}
