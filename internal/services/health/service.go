package health

// Status reports service liveness.
func Status() map[string]string {
	return map[string]string{"message": "Candidate Match API is working"}
}
