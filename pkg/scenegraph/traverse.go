package scenegraph

import (
	"github.com/avellis/pathtracer/pkg/core"
	"github.com/avellis/pathtracer/pkg/light"
)

// bias matches the grazing-incidence epsilon used by pkg/geometry and
// pkg/light's primitive intersection tests; ShadowSearch uses it as each
// shadow probe's minimum hit distance so a shadow ray does not re-hit the
// surface it starts on.
const bias = 2e-3

// SearchTree finds the closest-hit intersection of ray (given in root's
// parent frame) against node and its descendants, per §4.D. Because every
// node's transform is applied to the ray rather than the scene's geometry,
// a single ray parameter t is shared verbatim across every frame in the
// traversal — affine maps commute with the ray's point+t*direction form —
// so hit.Z keeps working as a cross-frame, monotonically shrinking bound
// with no extra bookkeeping.
//
// hit.P/N/GN are left in whichever frame actually produced the surviving
// hit; on the way back up from a successful recursive call, FromNodeCoords
// lifts them one level at a time until they reach the frame the caller
// passed ray in.
func SearchTree(node *Node, ray core.Ray, tMin, tMax float64, hit *core.HitInfo) bool {
	localRay := node.ToNodeCoords(ray)
	hitAny := false

	if node.Object != nil && node.Object.Hit(localRay, tMin, tMax, hit) {
		hit.Node = node
		hitAny = true
	}

	for _, child := range node.Children {
		if SearchTree(child, localRay, tMin, tMax, hit) {
			hitAny = true
		}
	}

	if hitAny {
		node.FromNodeCoords(hit)
	}
	return hitAny
}

// ShadowSearch reports whether ray (given in root's parent frame) hits any
// occluder in node or its descendants before tMax, stopping at the first
// hit found — shadow rays only need a boolean, not the closest surface, so
// there's no reason to keep searching once one occluder is found.
func ShadowSearch(node *Node, ray core.Ray, tMax float64) bool {
	localRay := node.ToNodeCoords(ray)

	if node.Object != nil {
		probe := core.NewHitInfo()
		if node.Object.Hit(localRay, bias, tMax, &probe) {
			return true
		}
	}

	for _, child := range node.Children {
		if ShadowSearch(child, localRay, tMax) {
			return true
		}
	}
	return false
}

// TraceRay runs SearchTree against the scene's root node, then tests every
// renderable light's own emissive surface against the same ray, so a ray
// that escapes the scene geometry but stares straight at a light sees it.
// Whichever candidate — scene geometry or a light's surface — ends up
// closer wins, since both write through the same shared hit.Z.
func TraceRay(root *Node, ray core.Ray, lights []light.Light, tMin, tMax float64) core.HitInfo {
	hit := core.NewHitInfo()

	if root != nil {
		SearchTree(root, ray, tMin, tMax, &hit)
	}

	for _, l := range lights {
		if l.IsRenderable() {
			l.IntersectRay(ray, tMin, tMax, &hit)
		}
	}

	return hit
}
