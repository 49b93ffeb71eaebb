// Package config loads the dashboard configuration from YAML.
//
// Values of the form ${VAR} are expanded from the environment before parsing,
// and a .env file in the working directory is loaded first when present.
// LoadAndValidate applies defaults and rejects incomplete configurations.
package config
