package instance

import "os"

// GetID returns the process instance identifier used in log context.
// CLASSTEE_INSTANCE_ID wins, then the platform's DYNO, then the hostname.
func GetID() string {
	for _, key := range []string{"CLASSTEE_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
