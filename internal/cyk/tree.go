package cyk

import (
	"fmt"
	"strings"

	"github.com/dekarrin/chomsky/internal/util"
)

const (
	treeLevelEmpty               = "        "
	treeLevelOngoing             = "  |     "
	treeLevelPrefix              = "  |%s: "
	treeLevelPrefixLast          = `  \%s: `
	treeLevelPrefixNamePadChar   = '-'
	treeLevelPrefixNamePadAmount = 3
)

func makeTreeLevelPrefix(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefix, msg)
}

func makeTreeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefixLast, msg)
}

// Tree is a binary parse tree. Every node is labeled with a non-terminal and
// is either a leaf deriving a single terminal or has exactly two children.
type Tree struct {
	// Symbol is the non-terminal at this node.
	Symbol string

	// Terminal is the token derived by this node. Only set for leaves.
	Terminal string

	Left  *Tree
	Right *Tree
}

// IsLeaf returns whether the node derives a terminal directly.
func (t *Tree) IsLeaf() bool {
	return t.Left == nil && t.Right == nil
}

type treeFrame struct {
	node   *Tree
	symbol string
	start  int
	l      int
}

// BuildTree builds the parse tree for an accepted Result by following the first
// back-pointer of the start symbol in the cell covering every token, and then
// the first back-pointer of each child in turn. The root of the tree is
// labeled with the Result's Origin. If the Result was not accepted, nil is
// returned.
func BuildTree(r Result) *Tree {
	n := r.Table.Len()
	if !r.Accepted || n == 0 {
		return nil
	}

	rootLabel := r.Origin
	if rootLabel == "" {
		rootLabel = r.Start
	}
	root := &Tree{Symbol: rootLabel}

	stack := util.Stack[treeFrame]{}
	stack.Push(treeFrame{node: root, symbol: r.Start, start: 0, l: n - 1})

	for !stack.Empty() {
		f := stack.Pop()

		bps := r.Table.Cell(f.start, f.l).Backpointers(f.symbol)
		if len(bps) == 0 {
			// only possible if r was not produced by a Parser
			return nil
		}
		bp := bps[0]

		if bp.Leaf {
			f.node.Terminal = bp.Terminal
			continue
		}

		f.node.Left = &Tree{Symbol: bp.Left}
		f.node.Right = &Tree{Symbol: bp.Right}

		stack.Push(treeFrame{node: f.node.Right, symbol: bp.Right, start: bp.RightStart, l: f.l - bp.Split - 1})
		stack.Push(treeFrame{node: f.node.Left, symbol: bp.Left, start: bp.LeftStart, l: bp.Split})
	}

	return root
}

// Leaves returns the terminals at the leaves of the tree, left to right.
func (t *Tree) Leaves() []string {
	var leaves []string

	stack := util.Stack[*Tree]{}
	stack.Push(t)
	for !stack.Empty() {
		node := stack.Pop()
		if node == nil {
			continue
		}
		if node.IsLeaf() {
			leaves = append(leaves, node.Terminal)
			continue
		}
		stack.Push(node.Right)
		stack.Push(node.Left)
	}

	return leaves
}

// Indented returns the tree with one node per line, each child indented two
// spaces past its parent. Leaves are written as "SYMBOL -> terminal".
func (t *Tree) Indented() string {
	type indentFrame struct {
		node  *Tree
		depth int
	}

	var lines []string

	stack := util.Stack[indentFrame]{}
	stack.Push(indentFrame{node: t})
	for !stack.Empty() {
		f := stack.Pop()
		if f.node == nil {
			continue
		}

		prefix := strings.Repeat("  ", f.depth)
		if f.node.IsLeaf() {
			lines = append(lines, prefix+f.node.Symbol+" -> "+f.node.Terminal)
			continue
		}
		lines = append(lines, prefix+f.node.Symbol)

		stack.Push(indentFrame{node: f.node.Right, depth: f.depth + 1})
		stack.Push(indentFrame{node: f.node.Left, depth: f.depth + 1})
	}

	return strings.Join(lines, "\n")
}

// String returns a prettified representation of the entire parse tree suitable
// for use in line-by-line comparisons of tree structure. Two parse trees are
// considered identical if they produce identical String() output.
func (t *Tree) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.leveledStr("", "")
}

func (t *Tree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	sb.WriteString(fmt.Sprintf("( %s )", t.Symbol))

	if t.IsLeaf() {
		sb.WriteRune('\n')
		sb.WriteString(contPrefix + makeTreeLevelPrefixLast(""))
		sb.WriteString(fmt.Sprintf("(TERM %q)", t.Terminal))
		return sb.String()
	}

	children := []*Tree{t.Left, t.Right}
	for i := range children {
		sb.WriteRune('\n')
		var leveledFirstPrefix string
		var leveledContPrefix string
		if i+1 < len(children) {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefix("")
			leveledContPrefix = contPrefix + treeLevelOngoing
		} else {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefixLast("")
			leveledContPrefix = contPrefix + treeLevelEmpty
		}
		sb.WriteString(children[i].leveledStr(leveledFirstPrefix, leveledContPrefix))
	}

	return sb.String()
}

// Equal returns whether o is a Tree (or pointer to one) with exactly the same
// structure and labels.
func (t *Tree) Equal(o any) bool {
	var other *Tree
	switch v := o.(type) {
	case Tree:
		other = &v
	case *Tree:
		other = v
	default:
		return false
	}

	if t == nil || other == nil {
		return t == other
	}

	if t.Symbol != other.Symbol || t.Terminal != other.Terminal {
		return false
	}
	if t.IsLeaf() != other.IsLeaf() {
		return false
	}
	if t.IsLeaf() {
		return true
	}
	return t.Left.Equal(other.Left) && t.Right.Equal(other.Right)
}
