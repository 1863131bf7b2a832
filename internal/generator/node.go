package generator

import (
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NodeIdentity supplies the host-scoped values embedded in time-based IDs.
type NodeIdentity interface {
	// NodeID is the 48-bit node used by UUID v1.
	NodeID() [6]byte
	// ProcessUnique is the per-session random value of ObjectID.
	ProcessUnique() [5]byte
	// Fingerprint is the 4-character host fingerprint of CUID v1.
	Fingerprint() string
}

// StaticIdentity is a fixed NodeIdentity, used for configured nodes and tests.
type StaticIdentity struct {
	Node    [6]byte
	Process [5]byte
	Print   string
}

func (s StaticIdentity) NodeID() [6]byte        { return s.Node }
func (s StaticIdentity) ProcessUnique() [5]byte { return s.Process }
func (s StaticIdentity) Fingerprint() string    { return s.Print }

// HostIdentity derives the node values from the running host. It is
// computed once and stays stable for the process lifetime.
type HostIdentity struct {
	node        [6]byte
	process     [5]byte
	fingerprint string
}

// NewHostIdentity builds a HostIdentity. The node id comes from a hardware
// interface when one is available and is random otherwise; the ObjectID
// session value is always drawn from r.
func NewHostIdentity(r RandomSource) (*HostIdentity, error) {
	h := &HostIdentity{}
	copy(h.node[:], uuid.NodeID())
	if err := readRandom(r, h.process[:]); err != nil {
		return nil, err
	}
	hostname, _ := os.Hostname()
	h.fingerprint = cuidFingerprint(os.Getpid(), hostname)
	return h, nil
}

// WithNodeID returns a copy of h that reports node as its UUID v1 node.
func (h *HostIdentity) WithNodeID(node [6]byte) *HostIdentity {
	c := *h
	c.node = node
	return &c
}

func (h *HostIdentity) NodeID() [6]byte        { return h.node }
func (h *HostIdentity) ProcessUnique() [5]byte { return h.process }
func (h *HostIdentity) Fingerprint() string    { return h.fingerprint }

// cuidFingerprint follows the reference cuid host fingerprint: two base36
// digits of the pid followed by two of a character sum over the hostname.
func cuidFingerprint(pid int, hostname string) string {
	sum := len(hostname) + 36
	for _, c := range hostname {
		sum += int(c)
	}
	return padBase36(uint64(pid), 2) + padBase36(uint64(sum), 2)
}

// padBase36 renders n in base36 and keeps the last size digits, left padding
// with zeros.
func padBase36(n uint64, size int) string {
	s := strconv.FormatUint(n, 36)
	if len(s) >= size {
		return s[len(s)-size:]
	}
	return strings.Repeat("0", size-len(s)) + s
}
