package iobridge

import (
	"github.com/gnames/cssbridge/pkg/bridge"
	"github.com/gnames/gnfmt"
)

// Encode renders conversion results as pretty JSON.
func Encode(out bridge.Output) ([]byte, error) {
	enc := gnfmt.GNjson{Pretty: true}
	res, err := enc.Encode(out)
	if err != nil {
		return nil, EncodeError(err)
	}
	return res, nil
}
