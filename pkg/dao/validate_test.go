package dao

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSSRulesRegistered(t *testing.T) {
	records := []Record{
		&ArrivalDao{}, &AssocDao{}, &AmplitudeDao{}, &ArInfoDao{},
		&EventDao{}, &OriginDao{}, &OrigerrDao{}, &EventControlDao{},
		&NetMagDao{}, &StaMagDao{},
	}

	used := make(map[string]bool)
	for _, r := range records {
		typ := reflect.TypeOf(r).Elem()
		for i := range typ.NumField() {
			for _, rule := range strings.Split(typ.Field(i).Tag.Get("validate"), ",") {
				if name, _, _ := strings.Cut(rule, "="); strings.HasPrefix(name, "css_") {
					used[name] = true
				}
			}
		}
	}

	assert.NotEmpty(t, used)
	for name := range used {
		assert.Contains(t, cssRules, name)
	}
	for name := range cssRules {
		assert.True(t, used[name], "rule %s is not used by any record", name)
	}
}
