// Package apps loads the apps file and selects which apps an operation
// runs against.
//
// # Apps file
//
// The apps file (config/heroku.yml by default) maps short environment names
// to Heroku apps. Two shapes are accepted and normalised into one [Settings]:
//
//	# current shape: one block per environment
//	production:
//	  app: awesomeapp
//	  config:
//	    BUNDLE_WITHOUT: "development:test"
//
//	# legacy shape: recognised by the top-level "apps" key
//	apps:
//	  production: awesomeapp
//	config:
//	  all:
//	    BUNDLE_WITHOUT: "development:test"
//	  production:
//	    GOOGLE_ANALYTICS: "UA-12345678-1"
//
// In the legacy shape config.all is merged under every environment's own
// config. In both shapes an environment without an app name uses its own
// name as the app name.
//
// # Selection
//
// A [Selection] collects environment names from the command line. Unknown
// names are dropped. When nothing was selected, [ResolveDefault] picks the
// only environment, or the one named like the current git branch.
package apps
