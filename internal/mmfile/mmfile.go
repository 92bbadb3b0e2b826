// Package mmfile maps files into memory for read-write access.
package mmfile

// Mapping is a file's bytes plus the hooks that flush and release them.
type Mapping struct {
	// Data is the file contents. Writes reach the file no later than Sync.
	Data  []byte
	sync  func() error
	close func() error
}

// Sync flushes modified bytes to the file.
func (m *Mapping) Sync() error {
	if m.sync == nil {
		return nil
	}
	return m.sync()
}

// Close releases the mapping. Data must not be used afterwards.
func (m *Mapping) Close() error {
	if m.close == nil {
		return nil
	}
	err := m.close()
	m.Data, m.sync, m.close = nil, nil, nil
	return err
}
