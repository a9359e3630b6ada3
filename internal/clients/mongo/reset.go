package mongo

// reset clears the singleton without going through Shutdown (helper for
// tests). It leaves drv alone so a stubbed driver stays in effect; the
// stub swap is responsible for restoring the real driver.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	client = nil
	db = nil
	initErr = nil
}
