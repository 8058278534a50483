package matlib

import (
	"fmt"

	"github.com/arloliu/matlib/container"
	"github.com/arloliu/matlib/internal/fsutil"
	"github.com/arloliu/matlib/jsondoc"
	"github.com/arloliu/matlib/material"
)

// DumpJSON encodes the library as a JSON document, one object per material
// in name order.
func (l *Library) DumpJSON() ([]byte, error) {
	mats := make([]*material.Material, 0, l.Len())
	for _, mat := range l.All() {
		mats = append(mats, mat)
	}

	return jsondoc.Marshal(mats)
}

// LoadJSON adds every material of a JSON document, in document order.
// When an element fails to decode nothing is added.
func (l *Library) LoadJSON(data []byte) error {
	mats, err := jsondoc.Unmarshal(data)
	if err != nil {
		return err
	}

	for i, mat := range mats {
		if err := l.add(mat); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	return nil
}

// ReadJSON adds every material of a JSON document file.
func (l *Library) ReadJSON(filename string) error {
	data, err := fsutil.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := l.LoadJSON(data); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	l.logger.Info().Str("file", filename).Int("total", l.Len()).Msg("read material document")

	return nil
}

// WriteJSON atomically replaces filename with the library's JSON document.
func (l *Library) WriteJSON(filename string) error {
	data, err := l.DumpJSON()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(filename, data, jsondoc.FileMode); err != nil {
		return err
	}

	l.logger.Info().Str("file", filename).Int("materials", l.Len()).Msg("wrote material document")

	return nil
}

// FromJSON creates a library from a JSON document file.
func FromJSON(filename string, opts ...Option) (*Library, error) {
	l, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := l.ReadJSON(filename); err != nil {
		return nil, err
	}

	return l, nil
}

// Open creates a library from a file in either format. Containers are
// recognized by their signature, whatever the file is called; anything else
// is read as a JSON document. datapath only applies to containers.
func Open(filename, datapath string, opts ...Option) (*Library, error) {
	isContainer, err := container.IsContainer(filename)
	if err != nil {
		return nil, err
	}
	if isContainer {
		return FromContainer(filename, datapath, opts...)
	}

	return FromJSON(filename, opts...)
}
