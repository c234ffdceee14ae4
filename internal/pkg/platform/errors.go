package platform

import "fmt"

// StatusError 平台接口返回非 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("platform api returned status %d: %s", e.StatusCode, e.Body)
}
