package framework

// BestEffort runs an action whose failure must not affect the outcome of the test, such as
// collecting diagnostics after a failure. An error returned by the action, or a panic inside
// it, is written to the logger and then discarded.
//
// It returns true if the action completed without error.
func BestEffort(logger Logger, description string, action func() error) (ok bool) {
	if logger == nil {
		logger = NullLogger()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("%s: ignoring panic: %+v", description, r)
			ok = false
		}
	}()
	if err := action(); err != nil {
		logger.Printf("%s: ignoring error: %s", description, err)
		return false
	}
	return true
}
