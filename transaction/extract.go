package transaction

import "go-unique-sdk/models"

// FindEventData returns the data of the first event matching module and method. The module
// is compared case insensitively.
func FindEventData(events []models.EventRecord, module, method string) ([]string, bool) {
	for _, event := range events {
		if event.Is(module, method) {
			return event.Data, true
		}
	}
	return nil, false
}
