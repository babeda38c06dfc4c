package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
)

// fsError builds a filesystem error. The wrapped cause names the
// function two frames up, the caller of the public constructor.
func fsError(code gn.ErrorCode, msg, action, path string, err error) error {
	caller := "unknown"
	if pc, _, _, ok := runtime.Caller(2); ok {
		caller = runtime.FuncForPC(pc).Name()
	}
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot %s %s: %w", caller, action, path, err),
	}
}

func CreateDirError(dir string, err error) error {
	return fsError(errcode.CreateDirError,
		"Cannot create <em>%s</em>", "create directory", dir, err)
}

func CopyFileError(file string, err error) error {
	return fsError(errcode.CopyFileError,
		"Cannot copy config file to <em>%s</em>", "copy file to", file, err)
}

func ReadFileError(path string, err error) error {
	return fsError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", "read", path, err)
}

func WriteFileError(path string, err error) error {
	return fsError(errcode.WriteFileError,
		"Cannot write <em>%s</em>", "write", path, err)
}
