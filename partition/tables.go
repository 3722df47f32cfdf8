package partition

const rw = OptRead | OptWrite

// partitions4M is the layout for 4 Mbit (512 KiB) parts.
var partitions4M = Table{
	Bootloader:  {Owner: OwnerEmbedded, Description: "Bootloader", Start: 0x000000, Length: 0x008000, Options: OptRead},
	Application: {Owner: OwnerEmbedded, Description: "Application", Start: 0x008000, Length: 0x040000, Options: rw},
	ATE:         {},
	OTATemp:     {Owner: OwnerEmbedded, Description: "OTA Storage", Start: 0x048000, Length: 0x028000, Options: rw},
	RFFirmware:  {},
	Parameter1:  {Owner: OwnerEmbedded, Description: "PARAMETER1", Start: 0x070000, Length: 0x001000, Options: rw},
	Parameter2:  {Owner: OwnerEmbedded, Description: "PARAMETER2", Start: 0x071000, Length: 0x002000, Options: rw},
	Parameter3:  {Owner: OwnerEmbedded, Description: "PARAMETER3", Start: 0x073000, Length: 0x001000, Options: rw},
	Parameter4:  {Owner: OwnerEmbedded, Description: "PARAMETER4", Start: 0x074000, Length: 0x002000, Options: rw},
	BTFirmware:  {},
	SPIFFS:      {Owner: OwnerEmbedded, Description: "FILESYSTEM", Start: 0x076000, Length: 0x00A000, Options: rw},
	Custom1:     {},
	Custom2:     {},
	Recovery:    {},
	Rollback:    {},
}

// partitions8M is the layout for 8 Mbit (1 MiB) parts.
var partitions8M = Table{
	Bootloader:  {Owner: OwnerEmbedded, Description: "Bootloader", Start: 0x000000, Length: 0x008000, Options: OptRead},
	Application: {Owner: OwnerEmbedded, Description: "Application", Start: 0x008000, Length: 0x060000, Options: rw},
	ATE:         {},
	OTATemp:     {Owner: OwnerEmbedded, Description: "OTA Storage", Start: 0x068000, Length: 0x060000, Options: rw},
	RFFirmware:  {},
	Parameter1:  {Owner: OwnerEmbedded, Description: "PARAMETER1", Start: 0x0C8000, Length: 0x001000, Options: rw},
	Parameter2:  {Owner: OwnerEmbedded, Description: "PARAMETER2", Start: 0x0C9000, Length: 0x004000, Options: rw},
	Parameter3:  {Owner: OwnerEmbedded, Description: "PARAMETER3", Start: 0x0CD000, Length: 0x001000, Options: rw},
	Parameter4:  {Owner: OwnerEmbedded, Description: "PARAMETER4", Start: 0x0CE000, Length: 0x004000, Options: rw},
	BTFirmware:  {},
	SPIFFS:      {Owner: OwnerEmbedded, Description: "FILESYSTEM", Start: 0x0D2000, Length: 0x02E000, Options: rw},
	Custom1:     {},
	Custom2:     {},
	Recovery:    {},
	Rollback:    {},
}

// Size returns the flash size in bytes covered by capacity c.
func (c Capacity) Size() uint32 {
	return uint32(c) * 1024 * 1024 / 8
}
