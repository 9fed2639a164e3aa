package canvasanim

import "fmt"

// Target is the accessor surface the scheduler animates. Rotation is local
// Euler angles in degrees. Implementations are compared by identity, so
// pointer receivers are expected.
type Target interface {
	Position() Vec3
	SetPosition(Vec3)
	Rotation() Vec3
	SetRotation(Vec3)
	Scale() Vec3
	SetScale(Vec3)
}

// Tintable is implemented by targets that expose one or more colors.
// The kind selects which one; ok is false when the node has no color of
// that kind.
type Tintable interface {
	ColorOf(kind ColorKind) (c Color, ok bool)
	SetColorOf(kind ColorKind, c Color) (ok bool)
}

// Disposable is implemented by targets that can be destroyed while a task
// still refers to them. Disposed targets are retired on the next tick.
type Disposable interface {
	IsDisposed() bool
}

// validTarget reports whether t can be read and written.
func validTarget(t Target) bool {
	if t == nil {
		return false
	}
	if d, ok := t.(Disposable); ok && d.IsDisposed() {
		return false
	}
	return true
}

// targetName returns a printable name for log and error messages.
func targetName(t Target) string {
	if t == nil {
		return "<nil>"
	}
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", t)
}

// readColor reads a target's color through its Tintable accessor.
func readColor(t Target, kind ColorKind) (Color, bool) {
	tc, ok := t.(Tintable)
	if !ok {
		return Color{}, false
	}
	return tc.ColorOf(kind)
}

// writeColor writes a target's color through its Tintable accessor.
func writeColor(t Target, kind ColorKind, c Color) bool {
	tc, ok := t.(Tintable)
	if !ok {
		return false
	}
	return tc.SetColorOf(kind, c)
}

// NodeType distinguishes which colors a Node exposes.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no color
	NodeTypeSprite                    // image with a tint (Color)
	NodeTypeText                      // text with a TextColor
	NodeTypeButton                    // colored through its Graphic node
)

// nodeIDCounter is a plain counter (no atomic; canvasanim is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a minimal retained scene node implementing Target, Tintable and
// Disposable. A single flat struct is used for all node types.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y, Z                float64
	RotX, RotY, RotZ       float64 // degrees
	ScaleX, ScaleY, ScaleZ float64
	PivotX, PivotY         float64

	// Colors
	Color     Color // sprite tint (NodeTypeSprite)
	TextColor Color // glyph color (NodeTypeText)
	Graphic   *Node // target graphic (NodeTypeButton)

	// Display size in pixels, used by the Driver's built-in renderer.
	Width, Height float64

	Visible  bool
	UserData any

	// Computed
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX, n.ScaleY, n.ScaleZ = 1, 1, 1
	n.Color = ColorWhite
	n.TextColor = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node. Containers have no color.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates an image node tinted with c.
func NewSprite(name string, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node drawn in c.
func NewText(name string, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeText}
	nodeDefaults(n)
	n.TextColor = c
	return n
}

// NewButton creates a button whose color is the color of graphic. The
// graphic is added as the button's first child. A nil graphic gets a white
// sprite.
func NewButton(name string, graphic *Node) *Node {
	n := &Node{Name: name, Type: NodeTypeButton}
	nodeDefaults(n)
	if graphic == nil {
		graphic = NewSprite(name+".graphic", ColorWhite)
	}
	n.Graphic = graphic
	n.AddChild(graphic)
	return n
}

// String returns the node name.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}

// --- Target ---

// Position returns the local position.
func (n *Node) Position() Vec3 { return Vec3{n.X, n.Y, n.Z} }

// SetPosition sets the local position and marks the node dirty.
func (n *Node) SetPosition(v Vec3) {
	n.X, n.Y, n.Z = v.X, v.Y, v.Z
	n.transformDirty = true
}

// Rotation returns the local Euler rotation in degrees.
func (n *Node) Rotation() Vec3 { return Vec3{n.RotX, n.RotY, n.RotZ} }

// SetRotation sets the local Euler rotation (degrees) and marks the node dirty.
func (n *Node) SetRotation(v Vec3) {
	n.RotX, n.RotY, n.RotZ = v.X, v.Y, v.Z
	n.transformDirty = true
}

// Scale returns the local scale.
func (n *Node) Scale() Vec3 { return Vec3{n.ScaleX, n.ScaleY, n.ScaleZ} }

// SetScale sets the local scale and marks the node dirty.
func (n *Node) SetScale(v Vec3) {
	n.ScaleX, n.ScaleY, n.ScaleZ = v.X, v.Y, v.Z
	n.transformDirty = true
}

// --- Tintable ---

// colorField resolves kind to the color storage it refers to, or nil.
func (n *Node) colorField(kind ColorKind) *Color {
	if kind == ColorKindAuto {
		switch n.Type {
		case NodeTypeSprite:
			kind = ColorKindSprite
		case NodeTypeText:
			kind = ColorKindText
		case NodeTypeButton:
			kind = ColorKindButton
		default:
			return nil
		}
	}
	switch {
	case kind == ColorKindSprite && n.Type == NodeTypeSprite:
		return &n.Color
	case kind == ColorKindText && n.Type == NodeTypeText:
		return &n.TextColor
	case kind == ColorKindButton && n.Type == NodeTypeButton && n.Graphic != nil:
		return n.Graphic.colorField(ColorKindAuto)
	}
	return nil
}

// ColorOf returns the color selected by kind.
func (n *Node) ColorOf(kind ColorKind) (Color, bool) {
	f := n.colorField(kind)
	if f == nil {
		return Color{}, false
	}
	return *f, true
}

// SetColorOf writes the color selected by kind.
func (n *Node) SetColorOf(kind ColorKind, c Color) bool {
	f := n.colorField(kind)
	if f == nil {
		return false
	}
	*f = c
	return true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("canvasanim: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("canvasanim: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("canvasanim: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Walk calls fn for n and every descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Tasks targeting a disposed node
// are retired by the scheduler on its next tick.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Graphic = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed. A nil node counts
// as disposed.
func (n *Node) IsDisposed() bool {
	return n == nil || n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
