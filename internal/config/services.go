package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ServiceKey normalizes a service name: lowercased, whitespace runs become
// a single hyphen.
func ServiceKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// ServiceDuration looks up the duration of a service in minutes, falling back
// to DefaultDuration for unknown keys.
func (b BookingConfig) ServiceDuration(service string) int {
	if d, ok := b.ServiceDurations[ServiceKey(service)]; ok && d > 0 {
		return d
	}
	return b.DefaultDuration
}

// KnownService reports whether service has an explicit catalog entry.
func (b BookingConfig) KnownService(service string) bool {
	_, ok := b.ServiceDurations[ServiceKey(service)]
	return ok
}

// ParseServiceDurations parses "haircut=30,beard trim=15".
func ParseServiceDurations(raw string) (map[string]int, error) {
	out := make(map[string]int)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("config: SERVICE_DURATIONS entry %q, want key=minutes", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: SERVICE_DURATIONS entry %q: invalid minutes", pair)
		}
		out[ServiceKey(k)] = n
	}
	return out, nil
}
