package quality

import (
	"context"
	"net/http"
	"time"
)

// RTT thresholds separating the network classes, matching the common
// effective-connection-type breakpoints.
const (
	slow2GThreshold = 1400 * time.Millisecond
	twoGThreshold   = 700 * time.Millisecond
	threeGThreshold = 270 * time.Millisecond
)

// ProbeNetwork measures the round-trip time of a single HEAD request against
// the given URL and classifies the connection. Any failure (timeout, DNS,
// refused connection) yields NetworkUnknown, which never downgrades the tier
// on its own.
//
// Parameters:
//   - ctx: controls the probe's lifetime
//   - client: the HTTP client to probe with
//   - url: the endpoint to measure against
//
// Returns:
//   - NetworkClass: the measured class, or NetworkUnknown on failure
func ProbeNetwork(ctx context.Context, client *http.Client, url string) NetworkClass {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return NetworkUnknown
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return NetworkUnknown
	}
	resp.Body.Close()

	return classifyRTT(time.Since(start))
}

// classifyRTT maps a measured round-trip time onto a NetworkClass.
func classifyRTT(rtt time.Duration) NetworkClass {
	switch {
	case rtt > slow2GThreshold:
		return NetworkSlow2G
	case rtt > twoGThreshold:
		return Network2G
	case rtt > threeGThreshold:
		return Network3G
	default:
		return Network4G
	}
}
