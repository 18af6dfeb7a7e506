package lovely

// ResetForTest drops the process runtime so Initialize runs again.
func ResetForTest() {
	initMu.Lock()
	defer initMu.Unlock()
	current.Store(nil)
}
