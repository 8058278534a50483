package table

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/material"
)

// metaEncMode uses Core Deterministic Encoding: sorted map keys and shortest
// forms, so equal metadata always produces equal row bytes.
var metaEncMode cbor.EncMode

var metaDecMode cbor.DecMode

func init() {
	var err error

	metaEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("table: CBOR encoder initialization failed: " + err.Error())
	}

	metaDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("table: CBOR decoder initialization failed: " + err.Error())
	}
}

func encodeMetadata(md map[string]any) ([]byte, error) {
	if len(md) == 0 {
		return nil, nil
	}

	data, err := metaEncMode.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidMetadata, err)
	}

	return data, nil
}

func decodeMetadata(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var md map[string]any
	if err := metaDecMode.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidMetadata, err)
	}

	return material.CanonicalMetadata(md)
}
