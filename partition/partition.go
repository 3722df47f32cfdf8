// Package partition describes the logical flash partitions of a device and
// resolves a partition-relative offset to the partition that backs it.
package partition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a logical partition. IDs are dense and index a Table.
type ID uint8

const (
	Bootloader ID = iota
	Application
	ATE
	OTATemp
	RFFirmware
	Parameter1
	Parameter2
	Parameter3
	Parameter4
	BTFirmware
	SPIFFS
	Custom1
	Custom2
	Recovery
	Rollback

	// Max is the number of partition IDs.
	Max
)

var idNames = [Max]string{
	Bootloader:  "bootloader",
	Application: "application",
	ATE:         "ate",
	OTATemp:     "ota-temp",
	RFFirmware:  "rf-firmware",
	Parameter1:  "parameter1",
	Parameter2:  "parameter2",
	Parameter3:  "parameter3",
	Parameter4:  "parameter4",
	BTFirmware:  "bt-firmware",
	SPIFFS:      "spiffs",
	Custom1:     "custom1",
	Custom2:     "custom2",
	Recovery:    "recovery",
	Rollback:    "rollback",
}

func (id ID) String() string {
	if id < Max {
		return idNames[id]
	}
	return fmt.Sprintf("partition(%d)", uint8(id))
}

// ParseID accepts a partition name (as printed by String) or its number.
func ParseID(s string) (ID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range idNames {
		if name == s {
			return ID(i), nil
		}
	}
	if n, err := strconv.ParseUint(s, 0, 8); err == nil && n < uint64(Max) {
		return ID(n), nil
	}
	return 0, fmt.Errorf("partition: unknown partition %q", s)
}

// Owner is the physical device holding a partition.
type Owner uint8

const (
	OwnerNone Owner = iota
	OwnerEmbedded
	OwnerSPI
)

func (o Owner) String() string {
	switch o {
	case OwnerEmbedded:
		return "embedded"
	case OwnerSPI:
		return "spi"
	default:
		return "none"
	}
}

// Options are informational access bits carried by a descriptor.
type Options uint8

const (
	OptRead Options = 1 << iota
	OptWrite
)

// Descriptor is one entry of a static partition table.
type Descriptor struct {
	Owner       Owner
	Description string
	Start       uint32
	Length      uint32
	Options     Options
}

// End returns the first address past the partition.
func (d Descriptor) End() uint64 { return uint64(d.Start) + uint64(d.Length) }

// Table is a partition table indexed by ID.
type Table []Descriptor

// Capacity selects one of the two supported flash sizes.
type Capacity uint8

const (
	Capacity4M Capacity = 4
	Capacity8M Capacity = 8
)

var ErrUnknownCapacity = errors.New("partition: unknown flash capacity")

func (c Capacity) String() string { return fmt.Sprintf("%dM", uint8(c)) }

// ParseCapacity accepts "4M", "8M", "4" or "8".
func ParseCapacity(s string) (Capacity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "4", "4M":
		return Capacity4M, nil
	case "8", "8M":
		return Capacity8M, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCapacity, s)
}

// Lookup returns the descriptor for id, or ok=false when id is not in the table.
type Lookup func(id ID) (Descriptor, bool)

// LookupFor resolves the partition table for a capacity once and returns a
// lookup over it.
func LookupFor(c Capacity) (Lookup, error) {
	var t Table
	switch c {
	case Capacity4M:
		t = partitions4M
	case Capacity8M:
		t = partitions8M
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCapacity, uint8(c))
	}
	return t.Lookup, nil
}

// Lookup implements Lookup over t.
func (t Table) Lookup(id ID) (Descriptor, bool) {
	if int(id) >= len(t) {
		return Descriptor{}, false
	}
	return t[id], true
}

// KVConfig describes the optional split of the key-value store across two
// partitions. Offsets at or past PrimarySize in Primary land in Secondary.
type KVConfig struct {
	Enabled     bool
	Primary     ID
	Secondary   ID
	PrimarySize uint32
}

// DefaultKV is the key-value layout used when multi-partition mode is enabled.
var DefaultKV = KVConfig{
	Primary:     Parameter2,
	Secondary:   Parameter4,
	PrimarySize: 0x2000,
}

// Resolver maps a partition ID and offset to a descriptor.
type Resolver struct {
	lookup Lookup
	kv     KVConfig
}

// NewResolver returns a resolver over lookup.
func NewResolver(lookup Lookup, kv KVConfig) *Resolver {
	return &Resolver{lookup: lookup, kv: kv}
}

// Info returns the descriptor for id.
func (r *Resolver) Info(id ID) (Descriptor, bool) {
	if r == nil || r.lookup == nil {
		return Descriptor{}, false
	}
	return r.lookup(id)
}

// KV returns the key-value configuration.
func (r *Resolver) KV() KVConfig { return r.kv }

// Redirect applies the key-value split: an offset at or past the primary
// size moves to the secondary partition, rebased by that size.
//
// Only the start offset is considered; a range that straddles the split is
// not divided.
func (r *Resolver) Redirect(id ID, off uint32) (ID, uint32) {
	if !r.kv.Enabled || id != r.kv.Primary {
		return id, off
	}
	if off >= r.kv.PrimarySize {
		return r.kv.Secondary, off - r.kv.PrimarySize
	}
	return id, off
}

// Resolve redirects (id, off) and returns the backing descriptor.
func (r *Resolver) Resolve(id ID, off uint32) (Descriptor, ID, uint32, bool) {
	id, off = r.Redirect(id, off)
	d, ok := r.Info(id)
	return d, id, off, ok
}
