package shape

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hupe1980/shapejson/internal/format"
)

var enums = struct {
	mu sync.RWMutex
	m  map[reflect.Type]*format.Enum
}{m: make(map[reflect.Type]*format.Enum)}

// RegisterEnum declares t as an enumerated (or, with flags, bit-flag) type
// with the given named values. Registering a type again replaces its names;
// routines already compiled keep the names they were built with.
func RegisterEnum(t reflect.Type, flags bool, members []format.EnumMember) error {
	if t == nil || !isInteger(t.Kind()) {
		return fmt.Errorf("register enum %v: not an integer type", t)
	}
	e, err := format.NewEnum(t.String(), flags, isSigned(t.Kind()), members)
	if err != nil {
		return err
	}
	enums.mu.Lock()
	enums.m[t] = e
	enums.mu.Unlock()
	return nil
}

// LookupEnum returns the formatter registered for t.
func LookupEnum(t reflect.Type) (*format.Enum, bool) {
	enums.mu.RLock()
	e, ok := enums.m[t]
	enums.mu.RUnlock()
	return e, ok
}

// UnregisterEnum removes t from the registry.
func UnregisterEnum(t reflect.Type) {
	enums.mu.Lock()
	delete(enums.m, t)
	enums.mu.Unlock()
}

func isInteger(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k)
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// bitsOf returns the width of an integer or float kind.
func bitsOf(k reflect.Kind) int {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 32
	default:
		return 64
	}
}
