// Package identity assigns deterministic identities to node instances and
// derives sub-identities for the draw calls they issue.
//
// Identities are arena indices handed out in graph-build order, so the same
// graph produces the same ids on every run.
package identity

import (
	"fmt"
	"hash/crc32"

	"github.com/xiaq/persistent/hash"
	"golang.org/x/mod/semver"
)

// NodeID is the arena index of a node instance.
type NodeID uint32

func (n NodeID) String() string {
	return fmt.Sprintf("n%d", uint32(n))
}

// ID identifies one draw call site: a node and one of its slots.
type ID struct {
	Node NodeID
	Slot uint8
}

// New returns the ID of slot on node.
func New(node NodeID, slot uint8) ID {
	return ID{Node: node, Slot: slot}
}

// Child derives the ID of another slot of the same node.
func (id ID) Child(slot uint8) ID {
	return ID{Node: id.Node, Slot: slot}
}

// Hash returns a stable 32-bit hash of the id.
func (id ID) Hash() uint32 {
	return hash.DJB(hash.UInt32(uint32(id.Node)), hash.UInt32(uint32(id.Slot)))
}

func (id ID) String() string {
	return fmt.Sprintf("n%d/%d", uint32(id.Node), id.Slot)
}

// ParseID parses the form produced by ID.String.
func ParseID(s string) (ID, error) {
	var node uint32
	var slot uint8
	if _, err := fmt.Sscanf(s, "n%d/%d", &node, &slot); err != nil {
		return ID{}, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return New(NodeID(node), slot), nil
}

// Arena hands out node ids in allocation order.
type Arena struct {
	next NodeID
}

// Next returns a fresh id.
func (a *Arena) Next() NodeID {
	id := a.next
	a.next++
	return id
}

// Len returns the number of ids handed out.
func (a *Arena) Len() int {
	return int(a.next)
}

// VersionHash returns the content-addressed hash of a node kind. version must
// be a valid semantic version; it is canonicalized before hashing so that
// "v1.2" and "v1.2.0" hash alike.
func VersionHash(name, version string) (uint32, error) {
	if !semver.IsValid(version) {
		return 0, fmt.Errorf("invalid version %q for %s", version, name)
	}
	return crc32.ChecksumIEEE([]byte(name + "-go-" + semver.Canonical(version))), nil
}
