package config

// MergeLocal merges a local per-project config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// GitHost is global-only and inherited through the copy.
	merged := *global

	if local.HerokuBin != "" {
		merged.HerokuBin = local.HerokuBin
	}
	if local.AppsFile != "" {
		merged.AppsFile = local.AppsFile
	}
	if local.Deploy.Ref != "" {
		merged.Deploy.Ref = local.Deploy.Ref
	}
	if local.Deploy.Force != nil {
		merged.Deploy.Force = *local.Deploy.Force
	}
	if local.Deploy.Maintenance != nil {
		merged.Deploy.Maintenance = *local.Deploy.Maintenance
	}

	return &merged
}
