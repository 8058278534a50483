// Package jsondoc maps material collections to and from JSON documents.
//
// A document is a top-level array with one object per material, in the form
// produced by material.Material's MarshalJSON. Documents are read as JSONC:
// // line comments, /* block comments */ and trailing commas are accepted.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/internal/fsutil"
	"github.com/arloliu/matlib/material"
)

// FileMode is the permission of newly written documents.
const FileMode = 0o644

// Marshal encodes materials as an indented JSON array, in the given order.
func Marshal(mats []*material.Material) ([]byte, error) {
	if mats == nil {
		mats = []*material.Material{}
	}

	data, err := json.MarshalIndent(mats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	return append(data, '\n'), nil
}

// Unmarshal decodes a document into materials, in document order.
// Anything but an array of objects is errs.ErrMalformedDocument.
func Unmarshal(data []byte) ([]*material.Material, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 || stripped[0] != '[' {
		return nil, errs.ErrMalformedDocument
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(stripped, &elems); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedDocument, err)
	}

	mats := make([]*material.Material, 0, len(elems))
	for i, elem := range elems {
		if trimmed := bytes.TrimSpace(elem); len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", errs.ErrMalformedDocument, i)
		}

		mat := material.New()
		if err := json.Unmarshal(elem, mat); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		mats = append(mats, mat)
	}

	return mats, nil
}

// ReadFile reads and decodes a document.
func ReadFile(filename string) ([]*material.Material, error) {
	data, err := fsutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	mats, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return mats, nil
}

// WriteFile encodes materials and atomically replaces filename.
func WriteFile(filename string, mats []*material.Material) error {
	data, err := Marshal(mats)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(filename, data, FileMode)
}
