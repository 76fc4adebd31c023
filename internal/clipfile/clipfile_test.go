package clipfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/animstudio/internal/curve"
	"github.com/decker502/animstudio/pkg/animation"
)

const sampleClip = `
name: orbit
looping: true
speed: 1.5
curves:
  - object: Ball
    property: positionX
    mode: smooth
    keyframes:
      - {time: 0.0, value: 0.0, out: 2.0}
      - {time: 4.0, value: 8.0, in: 2.0}
  - object: Ball
    property: scaleY
    keyframes:
      - {time: 0.0, value: 1.0}
      - {time: 2.0, value: 3.0}
`

// TestParse_Sample verifies field mapping from YAML into the clip model.
func TestParse_Sample(t *testing.T) {
	clip, err := Parse([]byte(sampleClip))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if clip.Name() != "orbit" {
		t.Errorf("Name() = %q, want orbit", clip.Name())
	}
	if !clip.IsLooping() {
		t.Error("IsLooping() = false, want true")
	}
	if clip.Speed() != 1.5 {
		t.Errorf("Speed() = %v, want 1.5", clip.Speed())
	}
	if clip.Duration() != 4.0 {
		t.Errorf("Duration() = %v, want 4", clip.Duration())
	}

	cv := clip.Curve("Ball", animation.PositionX)
	if cv == nil {
		t.Fatal("missing positionX curve")
	}
	if cv.Mode() != curve.Smooth {
		t.Errorf("positionX mode = %v, want smooth", cv.Mode())
	}
	if cv.KeyframeCount() != 2 {
		t.Errorf("positionX keyframes = %d, want 2", cv.KeyframeCount())
	}
	k, _ := cv.Key(0)
	if k.OutTangent != 2.0 {
		t.Errorf("first key out tangent = %v, want 2", k.OutTangent)
	}

	// Omitted mode falls back to linear.
	if sy := clip.Curve("Ball", animation.ScaleY); sy == nil || sy.Mode() != curve.Linear {
		t.Error("scaleY curve missing or not linear")
	}
}

// TestParse_Defaults verifies omitted looping/speed fields.
func TestParse_Defaults(t *testing.T) {
	clip, err := Parse([]byte("name: bare\ncurves: []\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if clip.IsLooping() {
		t.Error("IsLooping() = true, want false")
	}
	if clip.Speed() != 1.0 {
		t.Errorf("Speed() = %v, want 1 (default)", clip.Speed())
	}
}

// TestParse_Errors verifies the parse error taxonomy.
func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "missing clip name",
			input:   "curves: []\n",
			wantErr: "no name",
		},
		{
			name: "unknown property",
			input: `
name: bad
curves:
  - object: Ball
    property: positionW
    keyframes: []
`,
			wantErr: "unknown property",
		},
		{
			name: "unknown mode",
			input: `
name: bad
curves:
  - object: Ball
    property: positionX
    mode: hermite
    keyframes: []
`,
			wantErr: "unknown interpolation mode",
		},
		{
			name: "missing object",
			input: `
name: bad
curves:
  - property: positionX
    keyframes: []
`,
			wantErr: "missing object",
		},
		{
			name:    "not yaml",
			input:   "{{{{",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

// TestRoundTrip verifies Marshal/Parse stability for a representative clip.
func TestRoundTrip(t *testing.T) {
	original, err := Parse([]byte(sampleClip))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	reparsed, err := Parse(data)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}

	if reparsed.Name() != original.Name() ||
		reparsed.IsLooping() != original.IsLooping() ||
		reparsed.Speed() != original.Speed() ||
		reparsed.Duration() != original.Duration() {
		t.Error("round trip changed clip header fields")
	}

	for _, object := range original.AnimatedObjects() {
		for _, prop := range []animation.Property{animation.PositionX, animation.ScaleY} {
			a := original.Curve(object, prop)
			b := reparsed.Curve(object, prop)
			if (a == nil) != (b == nil) {
				t.Fatalf("curve presence changed for %s/%v", object, prop)
			}
			if a == nil {
				continue
			}
			if a.Mode() != b.Mode() || a.KeyframeCount() != b.KeyframeCount() {
				t.Errorf("curve %s/%v changed shape in round trip", object, prop)
			}
			for i := 0; i < a.KeyframeCount(); i++ {
				ka, _ := a.Key(i)
				kb, _ := b.Key(i)
				if ka != kb {
					t.Errorf("curve %s/%v key %d changed: %+v != %+v", object, prop, i, ka, kb)
				}
			}
		}
	}
}

// TestLoadFile verifies disk round trips and missing-file errors.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orbit.yaml")
	if err := os.WriteFile(path, []byte(sampleClip), 0644); err != nil {
		t.Fatal(err)
	}

	clip, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if clip.Name() != "orbit" {
		t.Errorf("Name() = %q, want orbit", clip.Name())
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile on missing file succeeded, want error")
	}

	out := filepath.Join(dir, "saved.yaml")
	if err := WriteFile(out, clip); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFile(out); err != nil {
		t.Errorf("reloading saved clip failed: %v", err)
	}
}
