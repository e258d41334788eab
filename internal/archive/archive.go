// Package archive handles the backup/export/restore lifecycle around the
// store file. Backups and restores are plain byte copies of the SQLite file;
// a restore is not atomic, which is why callers must confirm and are told to
// back up first.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// timestampLayout names backup files down to one second. Two backups within
// the same second collide; acceptable under the single-operator model.
const timestampLayout = "20060102_150405"

// Backup copies the live store file into dir (created if absent) as
// orders_backup_<timestamp>.db and returns the backup path. The copy is
// byte-identical to the store at call time.
func Backup(dbPath, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	dst := filepath.Join(dir, fmt.Sprintf("orders_backup_%s.db", now.Format(timestampLayout)))
	if err := copyFile(dbPath, dst); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	return dst, nil
}

// Restore overwrites the live store file with the contents of src.
//
// Destructive and irreversible without a prior backup: src is not validated
// as a well-formed store, and an interrupted copy can leave the live file
// corrupted. Confirmation is the caller's responsibility. The application
// should reopen the store afterwards.
func Restore(src, dbPath string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("restore source: %w", err)
	}
	if err := copyFile(src, dbPath); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
