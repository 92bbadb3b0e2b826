//go:build !unix

package mmfile

import "os"

// Map reads the entire file when mmap is not available. Sync writes a
// writable mapping back in full.
func Map(path string, writable bool) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Mapping{Data: data}
	if writable {
		m.sync = func() error {
			f, err := os.OpenFile(path, os.O_WRONLY, 0)
			if err != nil {
				return err
			}
			if _, err := f.WriteAt(data, 0); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}
		m.close = m.sync
	}
	return m, nil
}
