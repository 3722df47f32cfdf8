package flash

import (
	"fmt"
	"math"

	"flashhal/partition"

	"tinygo.org/x/tinyfs"
)

// PartitionDevice is a block device view of one partition, so a filesystem
// can be mounted on it. All access goes through the Flash checks.
type PartitionDevice struct {
	f  *Flash
	id partition.ID
}

var _ tinyfs.BlockDevice = (*PartitionDevice)(nil)

// Device returns a block device over partition id.
func (f *Flash) Device(id partition.ID) *PartitionDevice {
	return &PartitionDevice{f: f, id: id}
}

func (d *PartitionDevice) ReadAt(p []byte, off int64) (int, error) {
	o, err := d.offset(off)
	if err != nil {
		return 0, err
	}
	if err := d.f.Read(d.id, &o, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (d *PartitionDevice) WriteAt(p []byte, off int64) (int, error) {
	o, err := d.offset(off)
	if err != nil {
		return 0, err
	}
	if err := d.f.Write(d.id, &o, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Size returns the partition length.
func (d *PartitionDevice) Size() int64 {
	desc, ok := d.f.PartitionInfo(d.id)
	if !ok {
		return 0
	}
	return int64(desc.Length)
}

func (d *PartitionDevice) WriteBlockSize() int64 { return 1 }

func (d *PartitionDevice) EraseBlockSize() int64 { return int64(d.f.cfg.SectorSize) }

// EraseBlocks erases n sectors starting at sector start of the partition.
func (d *PartitionDevice) EraseBlocks(start, n int64) error {
	bs := d.EraseBlockSize()
	off, size := start*bs, n*bs
	if start < 0 || n < 0 || off > math.MaxUint32 || size > math.MaxUint32 {
		return &OpError{Op: "erase", Partition: d.id, Err: ErrInvalidArgument}
	}
	return d.f.Erase(d.id, uint32(off), uint32(size))
}

func (d *PartitionDevice) offset(off int64) (uint32, error) {
	if off < 0 || off > math.MaxUint32 {
		return 0, &OpError{Op: "seek", Partition: d.id, Err: fmt.Errorf("%w: offset %d", ErrInvalidArgument, off)}
	}
	return uint32(off), nil
}
