package unique

import (
	"strconv"
	"strings"
)

// SuccessPredicate judges the data of a call's marker event
type SuccessPredicate func(data []string) bool

// FirstFieldIsNonNegativeInteger holds when the first field is a decimal unsigned integer,
// which is how the pallet reports the collection id of a successful call
func FirstFieldIsNonNegativeInteger(data []string) bool {
	if len(data) == 0 {
		return false
	}
	_, err := strconv.ParseUint(strings.TrimSpace(data[0]), 10, 64)
	return err == nil
}
