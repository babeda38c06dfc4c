package dao

import (
	"errors"
	"fmt"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecord is wrapped by every record validation error.
var ErrInvalidRecord = errors.New("invalid legacy record")

// ValidationError reports the first field of a record that failed
// validation.
func ValidationError(table string, err error) error {
	field, tag, val := "", "", any(nil)
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		field, tag, val = vErrs[0].Field(), vErrs[0].Tag(), vErrs[0].Value()
	}
	msg := "Record of <em>%s</em> has invalid field <em>%s</em> " +
		"(rule %s, value %v)"
	vars := []any{table, field, tag, val}
	return &gn.Error{
		Code: errcode.DAOValidationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s.%s: %w: %w",
			table, field, ErrInvalidRecord, err),
	}
}
