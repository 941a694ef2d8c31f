package messages

import (
	"reflect"
	"runtime"
	"strings"
)

// GetComponent returns the package (or receiver type, for methods) of the function passed in,
// used as the component field of error messages
func GetComponent(temp interface{}) string {
	fn := runtime.FuncForPC(reflect.ValueOf(temp).Pointer())
	if fn == nil {
		return ""
	}
	strs := strings.Split(fn.Name(), ".")
	if len(strs) < 2 {
		return fn.Name()
	}
	strs = strings.Split(strs[len(strs)-2], "/")
	return strs[len(strs)-1]
}
