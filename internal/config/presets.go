package config

import "sort"

var Presets = map[string]*Config{
	"freefall": {
		Name: "freefall", Dt: 0.1, Duration: 2.0, Workers: 1,
		Bodies: []BodyConfig{{
			Name: "ball",
			Vel:  [3]float64{1, 0, 0},
			Ori:  AttitudeConfig{Axis: [3]float64{0, 0, 1}},
		}},
		Fields: []FieldConfig{{Type: "gravity", Vector: [3]float64{0, -9.8, 0}}},
	},
	"spinup": {
		Name: "spinup", Dt: 0.01, Duration: 5.0, Workers: 1,
		Bodies: []BodyConfig{{
			Name: "rotor",
			Ori:  AttitudeConfig{Axis: [3]float64{0, 0, 1}},
			Tor:  AttitudeConfig{Axis: [3]float64{0, 0, 1}},
		}},
		Fields: []FieldConfig{{Type: "spin", Magnitude: 2.0, Vector: [3]float64{0, 0, 1}}},
	},
	"precession": {
		Name: "precession", Dt: 0.005, Duration: 10.0, Workers: 1,
		Bodies: []BodyConfig{{
			Name: "top",
			Ori:  AttitudeConfig{Angle: 0, Axis: [3]float64{0.6, 0, 0.8}},
			Tor:  AttitudeConfig{Angle: 1.5, Axis: [3]float64{0, 0, 1}},
		}},
	},
	"projectiles": {
		Name: "projectiles", Dt: 0.01, Duration: 3.0, Workers: 4,
		Bodies: []BodyConfig{
			{Name: "low", Vel: [3]float64{10, 5, 0}, Ori: AttitudeConfig{Axis: [3]float64{0, 0, 1}}},
			{Name: "mid", Vel: [3]float64{7, 7, 0}, Ori: AttitudeConfig{Axis: [3]float64{0, 0, 1}},
				Tor: AttitudeConfig{Angle: 3, Axis: [3]float64{1, 0, 0}}},
			{Name: "high", Vel: [3]float64{5, 10, 0}, Ori: AttitudeConfig{Axis: [3]float64{0, 1, 0}},
				Tor: AttitudeConfig{Angle: 6, Axis: [3]float64{0, 0, 1}}},
		},
		Fields: []FieldConfig{
			{Type: "gravity", Magnitude: DefaultGravity},
			{Type: "drag", Magnitude: 0.05},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = append([]BodyConfig(nil), p.Bodies...)
	cfg.Fields = append([]FieldConfig(nil), p.Fields...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
