package config

import "os"

// Environment represents the deployment environment the process runs in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the current environment from APP_ENV, defaulting to
// development when unset or unrecognised.
func GetEnvironment() Environment {
	switch Environment(os.Getenv("APP_ENV")) {
	case Test:
		return Test
	case CI:
		return CI
	case Production:
		return Production
	default:
		return Development
	}
}
