package record

import "strings"

// UnknownSource labels points whose origin is missing from the catalog.
const UnknownSource = "Unknown Application"

// SourceLabel builds a human readable label for streamID from the package
// name, device manufacturer and device model, in that order, skipping any
// that are absent.
func SourceLabel(catalog Catalog, streamID string) string {
	ds, ok := catalog.Find(streamID)
	if !ok {
		return UnknownSource
	}

	var parts []string
	if ds.Application != nil && ds.Application.PackageName != "" {
		parts = append(parts, ds.Application.PackageName)
	}
	if ds.Device != nil {
		if ds.Device.Manufacturer != "" {
			parts = append(parts, ds.Device.Manufacturer)
		}
		if ds.Device.Model != "" {
			parts = append(parts, ds.Device.Model)
		}
	}
	return strings.Join(parts, " ")
}
