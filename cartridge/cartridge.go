// Package cartridge loads the flat, headerless 4 KiB program images this
// console runs: no iNES-style header, no bank switching, no trainer.
package cartridge

import (
	"fmt"
	"io"
	"os"
)

// Size is the fixed length of every supported cartridge image: the half of
// the 6507's 13-bit (8 KiB) address space that has A12 set, which the bus
// maps to ROM.
const Size = 4096

// ROM is a loaded cartridge image, ready to back a console.Bus.
type ROM struct {
	path string
	data [Size]byte
}

// Load reads path as a flat binary image. Anything other than exactly Size
// bytes is rejected: there is no header to tell us otherwise, so the file
// length itself is the only validation available.
func Load(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open cartridge file %q: %w", path, err)
	}
	defer f.Close()

	r := &ROM{path: path}
	n, err := io.ReadFull(f, r.data[:])
	if err == nil {
		// File is at least Size bytes; confirm there's nothing left over.
		var extra [1]byte
		if m, _ := f.Read(extra[:]); m > 0 {
			return nil, fmt.Errorf("cartridge file %q is larger than %d bytes", path, Size)
		}
		return r, nil
	}
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return nil, fmt.Errorf("cartridge file %q is %d bytes, want exactly %d", path, n, Size)
	}
	return nil, fmt.Errorf("couldn't read cartridge file %q: %w", path, err)
}

// Bytes returns the 4 KiB image, suitable for console.NewBus.
func (r *ROM) Bytes() [Size]byte {
	return r.data
}

// Path returns the filesystem path the image was loaded from.
func (r *ROM) Path() string {
	return r.path
}
