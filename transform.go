package canvasanim

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the node's local 2D affine matrix from its
// X/Y position, Z rotation (degrees) and X/Y scale. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY

	sin, cos := math.Sincos(n.RotZ * math.Pi / 180)

	preTx := -n.PivotX * sx
	preTy := -n.PivotY * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// localAlpha is the alpha of the node's primary color, or 1 for nodes
// without one. A button's alpha is carried by its graphic child.
func (n *Node) localAlpha() float64 {
	if n.Type == NodeTypeButton {
		return 1
	}
	if c, ok := n.ColorOf(ColorKindAuto); ok {
		return c.A
	}
	return 1
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty. Alpha is
// always recomputed because tasks write colors without touching the dirty flag.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.transformDirty = false
	}
	n.worldAlpha = parentAlpha * n.localAlpha()

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// UpdateTransforms refreshes world transforms and alphas for root and its
// subtree. Driver calls it after every tick.
func UpdateTransforms(root *Node) {
	if root == nil || root.disposed {
		return
	}
	updateWorldTransform(root, identityTransform, 1, false)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next UpdateTransforms. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldTransform returns the world matrix computed by the last
// UpdateTransforms.
func (n *Node) WorldTransform() [6]float64 {
	return n.worldTransform
}

// WorldAlpha returns the accumulated alpha computed by the last
// UpdateTransforms.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
