// Package assert panics on programmer errors, such as a constructor given
// arguments no caller should ever pass. It is not for validating input.
package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics when value is nil, including a nil pointer, map, slice,
// func or chan stored in an interface.
func NotNil(value any) {
	if isNil(value) {
		panic(fmt.Sprintf("expected value to be not nil, got %T", value))
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
