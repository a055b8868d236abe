package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bwade/vcs2600/console"
	"github.com/bwade/vcs2600/tia"
)

// Recorder captures a live run as a recording file plus a screen.bin
// framebuffer dump, in the same format Load reads back. It exists to build
// new test fixtures from a real run, not as a shipped feature of the
// emulator itself.
type Recorder struct {
	dir string
	rec *os.File
	buf *bufio.Writer
}

// NewRecorder creates dir (and any missing parents) and opens its
// recording.txt for writing. cartridgePath is copied alongside it so the
// fixture is self-contained.
func NewRecorder(dir, cartridgePath string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating recording directory %q: %w", dir, err)
	}

	rec, err := os.Create(filepath.Join(dir, "recording.txt"))
	if err != nil {
		return nil, fmt.Errorf("creating recording.txt: %w", err)
	}

	if err := copyFile(cartridgePath, filepath.Join(dir, "binary.bin")); err != nil {
		rec.Close()
		return nil, err
	}

	return &Recorder{dir: dir, rec: rec, buf: bufio.NewWriter(rec)}, nil
}

// Update logs ev at the system's current clock count. On Quit it also
// writes out the final framebuffer as screen.bin.
func (r *Recorder) Update(ev console.Event, clocks uint64, frame *tia.Frame) error {
	if ev.Kind == console.None {
		return nil
	}

	if _, err := fmt.Fprintf(r.buf, "%d %s\n", clocks, ev); err != nil {
		return fmt.Errorf("writing recording line: %w", err)
	}

	if ev.Kind == console.Quit {
		if err := r.buf.Flush(); err != nil {
			return fmt.Errorf("flushing recording: %w", err)
		}
		if err := os.WriteFile(filepath.Join(r.dir, "screen.bin"), frame.Pix[:], 0o644); err != nil {
			return fmt.Errorf("writing screen.bin: %w", err)
		}
	}

	return nil
}

// Close flushes any buffered output and closes the recording file.
func (r *Recorder) Close() error {
	if err := r.buf.Flush(); err != nil {
		r.rec.Close()
		return err
	}
	return r.rec.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening cartridge %q to copy into recording: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %q: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying cartridge into recording: %w", err)
	}
	return out.Close()
}
