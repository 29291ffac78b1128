package workflowtests

import (
	"net/http"
	"time"

	"github.com/SW-CD/mediahub-workflow-tests/client"
	"github.com/SW-CD/mediahub-workflow-tests/framework"
)

const (
	probeInterval       = time.Second
	probeRequestTimeout = 2 * time.Second
)

// WaitUntilReady polls the server's unauthenticated info endpoint until it
// answers 200 or the timeout elapses. Transport errors just mean "not up
// yet" and are swallowed; this function never fails, it only reports
// whether the server became reachable. A false return means the scenario
// must be abandoned (and teardown still run).
func WaitUntilReady(baseURL string, timeout time.Duration, logger framework.Logger) bool {
	c := client.New(baseURL, probeRequestTimeout, logger)
	deadline := time.Now().Add(timeout)
	for {
		resp, err := c.Get("/info", client.Credential{}, logger)
		if err == nil && resp.Status == http.StatusOK {
			return true
		}
		if err != nil {
			logger.Printf("server not ready yet: %s", err)
		} else {
			logger.Printf("server not ready yet: status %d", resp.Status)
		}
		if !time.Now().Add(probeInterval).Before(deadline) {
			return false
		}
		time.Sleep(probeInterval)
	}
}
