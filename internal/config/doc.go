// Package config handles loading and validation of san's own preferences.
//
// Preferences are distinct from the apps file (config/heroku.yml), which the
// apps package loads. They are read from ~/.config/san/config.toml, then
// overlaid by an optional .san.toml in the working directory, then by
// environment variables.
//
// # Configuration Sources (highest priority first)
//
//   - SAN_APPS_FILE env var: path of the apps file
//   - SAN_HEROKU_BIN env var: heroku executable
//   - .san.toml in the working directory
//   - ~/.config/san/config.toml
//   - Default values
//
// # Key Settings
//
//   - heroku_bin: heroku CLI executable (default: "heroku")
//   - apps_file: apps file, relative to the working directory (default: "config/heroku.yml")
//   - git_host: host in derived git remotes git@HOST:APP.git (default: "heroku.com")
//   - [deploy] ref: local ref pushed by "san push" and "san deploy" (default: "HEAD")
//   - [deploy] force: force-push by default
//   - [deploy] maintenance: wrap migrations in maintenance mode during "san deploy"
//
// git_host is global only; a .san.toml cannot redirect pushes to another host.
package config
