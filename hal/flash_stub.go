package hal

// stubFlash is the transport for targets without a flash driver.
type stubFlash struct{}

func (stubFlash) Open() (Handle, error) { return nil, ErrNotImplemented }
