package usecases

// SlotsAvailable reports how many more sessions may be active right now.
// The count it is given comes from a fresh store query; callers must not
// cache it across decisions.
func SlotsAvailable(activeCount int64, maxConcurrent int) int {
	slots := maxConcurrent - int(activeCount)
	if slots < 0 {
		return 0
	}
	return slots
}
