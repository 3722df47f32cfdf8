package flash

import (
	"errors"
	"fmt"

	"flashhal/partition"
)

var (
	// ErrOutOfBounds indicates offset+size exceeds the partition length.
	ErrOutOfBounds = errors.New("flash: out of partition bounds")
	// ErrProtectedRegion indicates the request touches the running firmware image.
	ErrProtectedRegion = errors.New("flash: protected code region")
	// ErrInvalidArgument indicates a nil cursor or buffer, or an unknown partition.
	ErrInvalidArgument = errors.New("flash: invalid argument")
	// ErrDeviceFailure wraps errors reported by the device transport.
	ErrDeviceFailure = errors.New("flash: device failure")
)

// OpError records a failed flash operation.
type OpError struct {
	Op        string
	Partition partition.ID
	Offset    uint32
	Size      uint32
	Err       error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("flash %s %s off=0x%X size=%d: %v", e.Op, e.Partition, e.Offset, e.Size, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Status maps an operation result to the classic HAL return code: 0 on
// success, -1 on any failure.
func Status(err error) int32 {
	if err != nil {
		return -1
	}
	return 0
}

func deviceErr(err error) error {
	return fmt.Errorf("%w: %w", ErrDeviceFailure, err)
}
