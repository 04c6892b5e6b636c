// Package config loads and validates campus-gateway configuration.
//
// Configuration is YAML with ${VAR_NAME} environment expansion:
//
//	server:
//	  http_addr: ":8080"
//	database:
//	  path: "/var/lib/campus/gateway.db"
//	auth:
//	  jwt_secret: "${CAMPUS_JWT_SECRET}"
//	  admin_passcode: "${CAMPUS_ADMIN_PASSCODE}"
//	  session_ttl: "24h"
//	logging:
//	  level: "info"
//	  format: "text"
//
// Load parses, expands, and validates in one step; a missing required
// field is a startup failure, never a per-request one.
package config
