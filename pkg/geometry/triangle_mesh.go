package geometry

import "github.com/avellis/pathtracer/pkg/core"

// TriangleMeshOptions carries optional per-vertex data used to build
// smooth-shaded triangles. Leave nil for flat-shaded, untextured meshes.
type TriangleMeshOptions struct {
	Normals []core.Vec3 // one per vertex, parallel to the vertex array
	UVs     []core.Vec2 // one per vertex, parallel to the vertex array
}

// TriangleMesh is a BVH-accelerated collection of triangles built from a
// shared vertex array and a flattened face-index list (three indices per
// triangle).
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
	bbox      core.AABB
}

// NewTriangleMesh builds a mesh from vertices and face indices; faces must
// have length divisible by 3. options may be nil for flat shading with no
// texture coordinates.
func NewTriangleMesh(vertices []core.Vec3, faces []int, options *TriangleMeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("geometry: face indices must be a multiple of 3")
	}

	numTriangles := len(faces) / 3
	triangles := make([]Shape, numTriangles)

	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
			panic("geometry: face index out of bounds")
		}

		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		if options != nil && options.Normals != nil {
			uv0, uv1, uv2 := core.Vec2{}, core.Vec2{}, core.Vec2{}
			if options.UVs != nil {
				uv0, uv1, uv2 = options.UVs[i0], options.UVs[i1], options.UVs[i2]
			}
			triangles[i] = NewTriangleSmooth(v0, v1, v2, options.Normals[i0], options.Normals[i1], options.Normals[i2], uv0, uv1, uv2)
		} else {
			triangles[i] = NewTriangle(v0, v1, v2)
		}
	}

	bvh := NewBVH(triangles)

	var bbox core.AABB
	if len(triangles) > 0 {
		bbox = triangles[0].BoundingBox()
		for i := 1; i < len(triangles); i++ {
			bbox = bbox.Union(triangles[i].BoundingBox())
		}
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       bvh,
		bbox:      bbox,
	}
}

// Hit delegates to the mesh's BVH.
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	return tm.bvh.Hit(ray, tMin, tMax, hit)
}

// BoundingBox returns the mesh's overall bounds.
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// TriangleCount returns the number of triangles in the mesh.
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
