package config

import "fmt"

// ConfigurationError reports a required setting that is missing
type ConfigurationError struct {
	Component string
	Key       string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s must be set", e.Component, e.Key)
}

// RequireKey returns a *ConfigurationError when value is empty
func RequireKey(component, key, value string) error {
	if value == "" {
		return &ConfigurationError{Component: component, Key: key}
	}
	return nil
}
