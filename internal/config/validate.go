package config

import (
	"fmt"
	"strings"
)

func (c *Config) validate() error {
	if strings.ContainsAny(c.HerokuBin, " \t\n") {
		return fmt.Errorf("invalid heroku_bin %q: must be a single executable name or path", c.HerokuBin)
	}
	if err := ValidateGitHost(c.GitHost); err != nil {
		return err
	}
	return validateRef(c.Deploy.Ref, "deploy.ref")
}

// ValidateGitHost checks that host is a bare host name, as used in
// scp-style remotes (git@host:app.git).
func ValidateGitHost(host string) error {
	if host == "" {
		return nil
	}
	if strings.Contains(host, "://") || strings.ContainsAny(host, "/: @") {
		return fmt.Errorf("invalid git_host %q: must be a bare host name like \"heroku.com\"", host)
	}
	return nil
}

// validateRef rejects refs git would misread as a refspec or option.
func validateRef(ref, field string) error {
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "-") || strings.Contains(ref, ":") || strings.ContainsAny(ref, " \t") {
		return fmt.Errorf("invalid %s %q: must be a plain ref such as \"HEAD\" or \"main\"", field, ref)
	}
	return nil
}
