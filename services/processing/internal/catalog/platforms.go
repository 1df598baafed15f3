package catalog

import (
	"strings"

	"empleos/services/processing/internal/models"
)

type PlatformInfo struct {
	Platform models.Platform
	// URLToken identifies the platform inside a listing URL.
	URLToken string
}

var Platforms = []PlatformInfo{
	{Platform: models.PlatformLinkedIn, URLToken: "linkedin"},
	{Platform: models.PlatformComputrabajo, URLToken: "computrabajo"},
	{Platform: models.PlatformIndeed, URLToken: "indeed"},
	{Platform: models.PlatformMagneto365, URLToken: "magneto"},
	{Platform: models.PlatformElempleo, URLToken: "elempleo"},
	{Platform: models.PlatformMasEmpleo, URLToken: "masempleo"},
}

// ParsePlatform maps a platform name or key ("computrabajo", "Magneto365") to its enum value.
// Unknown names are returned unchanged.
func ParsePlatform(name string) models.Platform {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Platforms {
		if n == strings.ToLower(string(p.Platform)) || n == p.URLToken {
			return p.Platform
		}
	}
	return models.Platform(strings.TrimSpace(name))
}

// PlatformFromURL returns the first platform whose token occurs in url.
func PlatformFromURL(url string) (models.Platform, bool) {
	u := strings.ToLower(url)
	for _, p := range Platforms {
		if strings.Contains(u, p.URLToken) {
			return p.Platform, true
		}
	}
	return "", false
}

// KnownPlatformURL reports whether url mentions any recognized platform.
func KnownPlatformURL(url string) bool {
	_, ok := PlatformFromURL(url)
	return ok
}
