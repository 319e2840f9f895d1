package echosim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotName returns the file name for a snapshot of view and case,
// for example "echo-PLAX-vsd.png".
func SnapshotName(view View, caseID string) string {
	return fmt.Sprintf("echo-%s-%s.png", view, caseID)
}

// Snapshot encodes the current surface as PNG into w.
func (e *Engine) Snapshot(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dc == nil {
		return ErrNoSurface
	}
	if err := e.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("echosim: encode snapshot: %w", err)
	}
	return nil
}

// SaveSnapshot writes the current surface into dir under SnapshotName and
// returns the path written.
func (e *Engine) SaveSnapshot(dir string, view View, caseID string) (string, error) {
	name := SnapshotName(view, caseID)
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("echosim: invalid snapshot name %q", name)
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("echosim: create snapshot: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := e.Snapshot(bw); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("echosim: write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("echosim: close snapshot: %w", err)
	}
	Logger().Info("echosim: snapshot written", "engine", e.id, "path", path)
	return path, nil
}
