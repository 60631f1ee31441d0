// Package propagation implements the W3C trace-context protocol:
// serializing a span context into a pair of text header values and
// parsing them back, over any key/value carrier.
package propagation

import "net/http"

// Carrier is a text-valued key/value store the propagator reads and
// writes, such as HTTP headers or messaging metadata. Get returns ""
// for an absent key.
type Carrier interface {
	Get(key string) string
	Set(key, value string)
}

// HeaderCarrier adapts http.Header to the Carrier interface.
type HeaderCarrier http.Header

// Get returns the first value associated with the key, using
// canonicalized header name matching.
func (hc HeaderCarrier) Get(key string) string {
	return http.Header(hc).Get(key)
}

// Set sets the header entry for the key, replacing any existing values.
func (hc HeaderCarrier) Set(key, value string) {
	http.Header(hc).Set(key, value)
}

// MapCarrier adapts a plain string map to the Carrier interface, for
// transports without header structures of their own.
type MapCarrier map[string]string

// Get returns the value for the key, or "".
func (mc MapCarrier) Get(key string) string {
	return mc[key]
}

// Set stores the value under the key.
func (mc MapCarrier) Set(key, value string) {
	mc[key] = value
}
