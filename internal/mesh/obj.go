package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"soft3d/internal/mathutil"
	"soft3d/internal/scene"
)

// OBJ is a Wavefront mesh flattened to triangles in scene.VertexStride layout.
// Polygons are fan-triangulated. Faces without normals get their geometric normal
// and faces without texture coordinates get UV (0, 0).
type OBJ struct {
	Vertices  []float64
	MTLLib    string
	Materials []string          // usemtl names in order of first use
	Textures  map[string]string // material → map_Kd path
}

// Texture returns the diffuse map of the first used material that has one.
func (o *OBJ) Texture() string {
	for _, m := range o.Materials {
		if t, ok := o.Textures[m]; ok {
			return t
		}
	}
	return ""
}

type objIndex struct{ v, t, n int } // 0-based, -1 when absent

// ParseOBJ reads v, vt, vn, f, usemtl and mtllib statements. Everything else is skipped.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	var (
		pos, norm []mathutil.Vec3
		uv        [][2]float64
		seen      = map[string]bool{}
	)
	o := &OBJ{Textures: map[string]string{}}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		args := fields[1:]

		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", line, err)
			}
			if fields[0] == "v" {
				pos = append(pos, mathutil.Vec3{v[0], v[1], v[2]})
			} else {
				norm = append(norm, mathutil.Vec3{v[0], v[1], v[2]}.Normalize())
			}
		case "vt":
			v, err := parseFloats(args, 2)
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", line, err)
			}
			uv = append(uv, [2]float64{v[0], v[1]})
		case "f":
			if len(args) < 3 {
				return nil, fmt.Errorf("obj: line %d: face needs 3 vertices, got %d", line, len(args))
			}
			face := make([]objIndex, len(args))
			for i, a := range args {
				idx, err := parseFaceIndex(a, len(pos), len(uv), len(norm))
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", line, err)
				}
				face[i] = idx
			}
			for i := 1; i+1 < len(face); i++ {
				o.Vertices = appendTriangle(o.Vertices, [3]objIndex{face[0], face[i], face[i+1]}, pos, uv, norm)
			}
		case "usemtl":
			if len(args) > 0 && !seen[args[0]] {
				seen[args[0]] = true
				o.Materials = append(o.Materials, args[0])
			}
		case "mtllib":
			if len(args) > 0 {
				o.MTLLib = args[0]
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	return o, nil
}

// ParseMTL returns the map_Kd of every material in a .mtl file.
func ParseMTL(r io.Reader) (map[string]string, error) {
	maps := map[string]string{}
	cur := ""
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			cur = fields[1]
		case "map_Kd":
			if cur != "" {
				// options such as -s precede the file name
				maps[cur] = fields[len(fields)-1]
			}
		}
	}
	return maps, sc.Err()
}

// LoadOBJ reads an OBJ file and its material library. Texture paths are joined to the
// OBJ's directory. A missing material library leaves Textures empty.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()

	o, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if o.MTLLib == "" {
		return o, nil
	}

	dir := filepath.Dir(path)
	mf, err := os.Open(filepath.Join(dir, o.MTLLib))
	if errors.Is(err, fs.ErrNotExist) {
		return o, nil
	}
	if err != nil {
		return nil, fmt.Errorf("obj: open mtllib: %w", err)
	}
	defer mf.Close()

	maps, err := ParseMTL(mf)
	if err != nil {
		return nil, fmt.Errorf("obj: parse mtllib %s: %w", o.MTLLib, err)
	}
	for name, tex := range maps {
		o.Textures[name] = filepath.Join(dir, tex)
	}
	return o, nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i := range out {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// parseFaceIndex decodes "v", "v/t", "v//n" or "v/t/n". Indices are 1-based; negative
// ones count back from the latest element.
func parseFaceIndex(s string, nv, nt, nn int) (objIndex, error) {
	parts := strings.Split(s, "/")
	idx := objIndex{-1, -1, -1}
	counts := [3]int{nv, nt, nn}
	dst := [3]*int{&idx.v, &idx.t, &idx.n}

	for i, p := range parts {
		if i > 2 {
			return idx, fmt.Errorf("bad face vertex %q", s)
		}
		if p == "" {
			if i == 0 {
				return idx, fmt.Errorf("bad face vertex %q", s)
			}
			continue
		}
		k, err := strconv.Atoi(p)
		if err != nil {
			return idx, fmt.Errorf("bad face vertex %q: %w", s, err)
		}
		if k < 0 {
			k = counts[i] + k
		} else {
			k--
		}
		if k < 0 || k >= counts[i] {
			return idx, fmt.Errorf("face index %q out of range", s)
		}
		*dst[i] = k
	}
	return idx, nil
}

func appendTriangle(buf []float64, tri [3]objIndex, pos []mathutil.Vec3, uv [][2]float64, norm []mathutil.Vec3) []float64 {
	a, b, c := pos[tri[0].v], pos[tri[1].v], pos[tri[2].v]
	face := b.Sub(a).Cross(c.Sub(a)).Normalize()

	for _, ix := range tri {
		v := scene.Vertex{Position: pos[ix.v], Normal: face}
		if ix.t >= 0 {
			v.UV = uv[ix.t]
		}
		if ix.n >= 0 {
			v.Normal = norm[ix.n]
		}
		buf = v.Append(buf)
	}
	return buf
}
