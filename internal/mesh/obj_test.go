package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soft3d/internal/mathutil"
	"soft3d/internal/scene"
)

const quadOBJ = `# unit quad
mtllib quad.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 2
usemtl wall
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJFanTriangulates(t *testing.T) {
	o, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	assert.Equal(t, 2, triangles(t, o.Vertices))
	assert.Equal(t, "quad.mtl", o.MTLLib)
	assert.Equal(t, []string{"wall"}, o.Materials)

	m := scene.NewModel(o.Vertices)
	v := m.Vertex(2)
	assert.Equal(t, mathutil.Vec3{1, 1, 0}, v.Position)
	assert.Equal(t, [2]float64{1, 1}, v.UV)
	assert.Equal(t, mathutil.Vec3{0, 0, 1}, v.Normal, "normals are normalized")

	// second triangle is 1, 3, 4
	assert.Equal(t, mathutil.Vec3{0, 1, 0}, m.Vertex(5).Position)
}

func TestParseOBJDerivesMissingNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 0 -1\nf 1 2 3\n"
	o, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	m := scene.NewModel(o.Vertices)
	for i := 0; i < 3; i++ {
		assert.Equal(t, mathutil.Vec3{0, 1, 0}, m.Vertex(i).Normal)
		assert.Equal(t, [2]float64{}, m.Vertex(i).UV)
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf -3//-1 -2//-1 -1//-1\n"
	o, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	m := scene.NewModel(o.Vertices)
	assert.Equal(t, mathutil.Vec3{1, 0, 0}, m.Vertex(1).Position)
	assert.Equal(t, mathutil.Vec3{0, 0, 1}, m.Vertex(1).Normal)
}

func TestParseOBJErrors(t *testing.T) {
	for name, src := range map[string]string{
		"out of range": "v 0 0 0\nf 1 2 3\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"bad float":    "v 0 x 0\n",
		"bad index":    "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 a 3\n",
	} {
		_, err := ParseOBJ(strings.NewReader(src))
		assert.Error(t, err, name)
	}
}

func TestLoadOBJResolvesMaterialTexture(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(quadOBJ), 0644))
	mtl := "newmtl other\nmap_Kd other.png\nnewmtl wall\nKd 1 1 1\nmap_Kd -s 1 1 1 tex/brick.png\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte(mtl), 0644))

	o, err := LoadOBJ(filepath.Join(dir, "quad.obj"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tex", "brick.png"), o.Texture())
}

func TestLoadOBJWithoutMaterialLibrary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(quadOBJ), 0644))

	o, err := LoadOBJ(filepath.Join(dir, "quad.obj"))
	require.NoError(t, err)
	assert.Empty(t, o.Texture())

	_, err = LoadOBJ(filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)
}
