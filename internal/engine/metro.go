package engine

import (
	"strings"

	"github.com/telarmoda/shipping/pkg/postal"
)

// MetroZone is a named set of postal-code prefixes eligible for
// same-day local courier dispatch.
type MetroZone struct {
	Name     string
	Prefixes []string
}

// MetroZones is the configured zone table.
type MetroZones []MetroZone

// ParseMetroZones parses the "zone=prefix,prefix;zone=..." config
// string. Malformed segments are dropped; an empty table just disables
// local dispatch.
func ParseMetroZones(raw string) MetroZones {
	var zones MetroZones
	for _, segment := range strings.Split(raw, ";") {
		name, list, ok := strings.Cut(strings.TrimSpace(segment), "=")
		if !ok || name == "" {
			continue
		}
		var prefixes []string
		for _, p := range strings.Split(list, ",") {
			if p = strings.TrimSpace(p); p != "" {
				prefixes = append(prefixes, p)
			}
		}
		if len(prefixes) > 0 {
			zones = append(zones, MetroZone{Name: name, Prefixes: prefixes})
		}
	}
	return zones
}

// ZoneFor returns the zone containing the postal code, if any.
func (z MetroZones) ZoneFor(postalCode string) (string, bool) {
	code := postal.NormalizeCode(postalCode)
	for _, zone := range z {
		for _, prefix := range zone.Prefixes {
			if strings.HasPrefix(code, prefix) {
				return zone.Name, true
			}
		}
	}
	return "", false
}

// SameZone reports whether both postal codes fall in one configured
// metro zone, and which.
func (z MetroZones) SameZone(a, b string) (string, bool) {
	zoneA, okA := z.ZoneFor(a)
	zoneB, okB := z.ZoneFor(b)
	if okA && okB && zoneA == zoneB {
		return zoneA, true
	}
	return "", false
}
