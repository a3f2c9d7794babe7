// Package gear provides equipment slots, set bonuses, the bounded inventory
// and the equipment advisor.
package gear

// Result is the outcome record shared by gear operations. Expected domain
// failures (full inventory, wrong slot, missing item) are reported here, not
// as errors.
type Result struct {
	Success bool
	Message string
}

func ok(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(message string) Result {
	return Result{Success: false, Message: message}
}
