// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAdmin                       // Admin bearer token required
)

// RouteSecurity maps "METHOD /path" to the security level the router enforces.
// Paths are given without the optional /api prefix.
var RouteSecurity = map[string]SecurityLevel{
	// Auth
	"POST /auth":        SecurityPublic,
	"GET /auth/session": SecurityAdmin,

	// Recruitments - reads are public
	"GET /recruitments":         SecurityPublic,
	"GET /recruitments/summary": SecurityPublic,

	// Recruitments - mutations
	"POST /recruitments":   SecurityAdmin,
	"PUT /recruitments":    SecurityAdmin,
	"DELETE /recruitments": SecurityAdmin,

	// Operational
	"GET /health": SecurityPublic,
	"GET /":       SecurityPublic,
}

// RequiredSecurity returns the level for a route. Routes missing from the map
// require admin.
func RequiredSecurity(method, path string) SecurityLevel {
	if level, ok := RouteSecurity[method+" "+path]; ok {
		return level
	}
	return SecurityAdmin
}
