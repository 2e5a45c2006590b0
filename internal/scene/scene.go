// Package scene reads and writes collision scene files and builds physics
// worlds from them. A scene may be stored as JSON, TOML or YAML; the format
// is picked from the file extension.
package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"collide3d/internal/logx"
	"collide3d/internal/physics"
	"collide3d/internal/vecmath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultRayDistance is used for rays without a maxDistance.
const DefaultRayDistance = 1000

// Format names a scene file encoding.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// --- File types ---

type File struct {
	// Tolerances overrides the engine epsilons. Zero fields keep their
	// defaults.
	Tolerances physics.Tolerances `json:"tolerances" toml:"tolerances" yaml:"tolerances"`
	Bodies     []BodyDef          `json:"bodies" toml:"bodies" yaml:"bodies"`
	Rays       []RayDef           `json:"rays,omitempty" toml:"rays,omitempty" yaml:"rays,omitempty"`
}

// BodyDef places one shape in the world. Rotation is euler degrees applied
// X, then Y, then Z, as vecmath.ComposeEuler takes them. A zero scale means 1.
type BodyDef struct {
	Name     string     `json:"name" toml:"name" yaml:"name"`
	Shape    ShapeDef   `json:"shape" toml:"shape" yaml:"shape"`
	Position [3]float32 `json:"position" toml:"position" yaml:"position"`
	Rotation [3]float32 `json:"rotation" toml:"rotation" yaml:"rotation"`

	// Orientation is a quaternion (x, y, z, w) used instead of Rotation
	// when it is not all zero.
	Orientation [4]float32 `json:"orientation" toml:"orientation" yaml:"orientation"`

	Scale    [3]float32 `json:"scale" toml:"scale" yaml:"scale"`
	Velocity [3]float32 `json:"velocity" toml:"velocity" yaml:"velocity"`
	Static   bool       `json:"static,omitempty" toml:"static,omitempty" yaml:"static,omitempty"`
}

// ShapeDef is a body-space shape. Which fields apply depends on Type:
//
//	sphere    center, radius
//	capsule   a, b, radius
//	box       min, max
//	obb       center, size, rotation
//	triangle  vertices (3)
//	mesh      vertices and indices, or size for a cube
type ShapeDef struct {
	Type     string       `json:"type" toml:"type" yaml:"type"`
	Center   [3]float32   `json:"center,omitempty" toml:"center,omitempty" yaml:"center,omitempty"`
	Radius   float32      `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
	A        [3]float32   `json:"a,omitempty" toml:"a,omitempty" yaml:"a,omitempty"`
	B        [3]float32   `json:"b,omitempty" toml:"b,omitempty" yaml:"b,omitempty"`
	Min      [3]float32   `json:"min,omitempty" toml:"min,omitempty" yaml:"min,omitempty"`
	Max      [3]float32   `json:"max,omitempty" toml:"max,omitempty" yaml:"max,omitempty"`
	Size     [3]float32   `json:"size,omitempty" toml:"size,omitempty" yaml:"size,omitempty"`
	Rotation [3]float32   `json:"rotation,omitempty" toml:"rotation,omitempty" yaml:"rotation,omitempty"`
	Vertices [][3]float32 `json:"vertices,omitempty" toml:"vertices,omitempty" yaml:"vertices,omitempty"`
	Indices  []int        `json:"indices,omitempty" toml:"indices,omitempty" yaml:"indices,omitempty"`
}

type RayDef struct {
	Name        string     `json:"name" toml:"name" yaml:"name"`
	Origin      [3]float32 `json:"origin" toml:"origin" yaml:"origin"`
	Direction   [3]float32 `json:"direction" toml:"direction" yaml:"direction"`
	MaxDistance float32    `json:"maxDistance,omitempty" toml:"maxDistance,omitempty" yaml:"maxDistance,omitempty"`
}

// Distance returns MaxDistance, or DefaultRayDistance when unset.
func (r RayDef) Distance() float32 {
	if r.MaxDistance <= 0 {
		return DefaultRayDistance
	}
	return r.MaxDistance
}

// --- Formats ---

// FormatFromPath returns the format for the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", errors.Errorf("unknown scene format for %q", path)
}

type decoder interface {
	Decode(v any) error
}

// decoderFunc creates a strict decoder reading from r.
type decoderFunc func(r io.Reader) decoder

var decoders = map[Format]decoderFunc{
	JSON: func(r io.Reader) decoder {
		d := json.NewDecoder(r)
		d.DisallowUnknownFields()
		return d
	},
	TOML: func(r io.Reader) decoder {
		return toml.NewDecoder(r).DisallowUnknownFields()
	},
	YAML: func(r io.Reader) decoder {
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		return d
	},
}

// --- Loading ---

// Load reads a scene file.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene")
	}
	defer fp.Close()

	f, err := Decode(fp, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parse scene %s", path)
	}
	return f, nil
}

// Decode reads a scene in the given format from r.
func Decode(r io.Reader, format Format) (*File, error) {
	newDecoder, ok := decoders[format]
	if !ok {
		return nil, errors.Errorf("unknown scene format %q", format)
	}
	var f File
	if err := newDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scene")
		}
		return nil, err
	}
	return &f, nil
}

// --- Saving ---

// Save writes the scene to path in the format matching its extension.
func (f *File) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := f.Encode(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write scene")
	}
	return nil
}

// Encode returns the scene in the given format.
func (f *File) Encode(format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case JSON:
		data, err = json.MarshalIndent(f, "", "  ")
	case TOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		err = enc.Encode(f)
		data = buf.Bytes()
	case YAML:
		data, err = yaml.Marshal(f)
	default:
		return nil, errors.Errorf("unknown scene format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "marshal scene as %s", format)
	}
	return data, nil
}

// --- Building ---

// Build creates a world holding every body of the scene, in file order, so
// body IDs match indices into Bodies. A nil logger uses the physics logger.
func (f *File) Build(logger *slog.Logger) (*physics.World, error) {
	if logger == nil {
		logger = logx.For("physics")
	}
	w := physics.NewWorld(f.Tolerances, logger)
	for i, def := range f.Bodies {
		if def.Orientation != [4]float32{} && def.Rotation != [3]float32{} {
			return nil, errors.Errorf("body %d (%s): rotation and orientation are exclusive", i, def.Name)
		}
		v, err := def.Shape.Volume()
		if err != nil {
			return nil, errors.Wrapf(err, "body %d (%s)", i, def.Name)
		}
		b := w.AddBody(def.Name, v, def.Transform())
		b.Static = def.Static
		b.Velocity = vec3(def.Velocity)
	}
	logger.Info("Scene: built world", "bodies", len(f.Bodies), "rays", len(f.Rays))
	return w, nil
}

// Transform returns the body's world matrix.
func (d BodyDef) Transform() rl.Matrix {
	scale := vec3(d.Scale)
	if d.Scale == [3]float32{} {
		scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	if d.Orientation != [4]float32{} {
		q := rl.QuaternionNormalize(rl.NewQuaternion(d.Orientation[0], d.Orientation[1], d.Orientation[2], d.Orientation[3]))
		return vecmath.Compose(vec3(d.Position), q, scale)
	}
	return vecmath.ComposeEuler(vec3(d.Position), vec3(d.Rotation), scale)
}

func vec3(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}
