// Package clipfile provides the YAML file format for animation clips and the
// parser/writer between clip files and the in-memory animation model. Clip
// files are what the studio's library directory contains and what the
// timeline editor saves.
//
// Format example:
//
//	name: orbit
//	looping: true
//	speed: 1.0
//	curves:
//	  - object: Ball
//	    property: positionX
//	    mode: smooth          # linear | smooth | step | bezier
//	    keyframes:
//	      - {time: 0.0, value: 0.0, in: 0.0, out: 2.0}
//	      - {time: 4.0, value: 8.0}
package clipfile

import (
	"fmt"
	"os"

	"github.com/decker502/animstudio/internal/curve"
	"github.com/decker502/animstudio/pkg/animation"
	"gopkg.in/yaml.v3"
)

// File is the top-level clip file structure.
type File struct {
	Name    string     `yaml:"name"`
	Looping bool       `yaml:"looping,omitempty"`
	Speed   float64    `yaml:"speed,omitempty"` // 0 means 1.0
	Curves  []CurveDef `yaml:"curves"`
}

// CurveDef is one curve entry binding a keyframe list to an object property.
type CurveDef struct {
	Object    string        `yaml:"object"`
	Property  string        `yaml:"property"`
	Mode      string        `yaml:"mode,omitempty"` // empty means linear
	Keyframes []KeyframeDef `yaml:"keyframes"`
}

// KeyframeDef is one keyframe. In/Out tangents default to 0 and only matter
// for the smooth and bezier modes.
type KeyframeDef struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
	In    float64 `yaml:"in,omitempty"`
	Out   float64 `yaml:"out,omitempty"`
}

// Parse decodes clip file bytes into an animation clip.
func Parse(data []byte) (*animation.Clip, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse clip file: %w", err)
	}
	return f.Build()
}

// LoadFile reads and parses a clip file from disk.
func LoadFile(path string) (*animation.Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip file '%s': %w", path, err)
	}
	clip, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("clip file '%s': %w", path, err)
	}
	return clip, nil
}

// Build converts the decoded file structure into an animation clip,
// validating names, properties and modes.
func (f *File) Build() (*animation.Clip, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("clip file has no name")
	}

	clip := animation.NewClip(f.Name)
	clip.SetLooping(f.Looping)
	if f.Speed != 0 {
		clip.SetSpeed(f.Speed)
	}

	for i, def := range f.Curves {
		if def.Object == "" {
			return nil, fmt.Errorf("curve %d: missing object name", i)
		}
		prop, ok := animation.ParseProperty(def.Property)
		if !ok {
			return nil, fmt.Errorf("curve %d (%s): unknown property %q", i, def.Object, def.Property)
		}

		mode := curve.Linear
		if def.Mode != "" {
			mode, ok = curve.ParseInterpolation(def.Mode)
			if !ok {
				return nil, fmt.Errorf("curve %d (%s/%s): unknown interpolation mode %q",
					i, def.Object, def.Property, def.Mode)
			}
		}

		cv := curve.New(mode)
		for _, k := range def.Keyframes {
			cv.AddKey(curve.Keyframe{
				Time:       k.Time,
				Value:      k.Value,
				InTangent:  k.In,
				OutTangent: k.Out,
			})
		}
		clip.AddCurve(def.Object, prop, cv)
	}

	return clip, nil
}

// Marshal encodes a clip back into clip file bytes. Curves serialize in the
// clip's deterministic object order, properties in enum order.
func Marshal(clip *animation.Clip) ([]byte, error) {
	if clip == nil {
		return nil, fmt.Errorf("nil clip")
	}

	f := File{
		Name:    clip.Name(),
		Looping: clip.IsLooping(),
		Speed:   clip.Speed(),
	}

	props := []animation.Property{
		animation.PositionX, animation.PositionY, animation.PositionZ,
		animation.RotationX, animation.RotationY, animation.RotationZ,
		animation.ScaleX, animation.ScaleY, animation.ScaleZ,
		animation.Custom,
	}

	for _, object := range clip.AnimatedObjects() {
		for _, prop := range props {
			cv := clip.Curve(object, prop)
			if cv == nil {
				continue
			}
			def := CurveDef{
				Object:   object,
				Property: prop.String(),
				Mode:     cv.Mode().String(),
			}
			for _, k := range cv.Keyframes() {
				def.Keyframes = append(def.Keyframes, KeyframeDef{
					Time:  k.Time,
					Value: k.Value,
					In:    k.InTangent,
					Out:   k.OutTangent,
				})
			}
			f.Curves = append(f.Curves, def)
		}
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal clip %q: %w", clip.Name(), err)
	}
	return data, nil
}

// WriteFile saves a clip to disk in clip file format.
func WriteFile(path string, clip *animation.Clip) error {
	data, err := Marshal(clip)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write clip file '%s': %w", path, err)
	}
	return nil
}
