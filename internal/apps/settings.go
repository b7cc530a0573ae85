package apps

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// legacyAppsKey marks the legacy file shape.
const legacyAppsKey = "apps"

// legacyConfigKey holds per-environment config in the legacy shape;
// its "all" entry applies to every environment.
const (
	legacyConfigKey = "config"
	legacySharedKey = "all"
)

// Environment is one named deployment target.
type Environment struct {
	Name   string
	App    string            // heroku app name
	Config map[string]string // config vars, never nil
}

// DefaultGitHost serves the git remotes of heroku apps.
const DefaultGitHost = "heroku.com"

// Repo returns the git remote of the app on host, e.g.
// git@heroku.com:awesomeapp.git. An empty host means DefaultGitHost.
func (e Environment) Repo(host string) string {
	if host == "" {
		host = DefaultGitHost
	}
	return "git@" + host + ":" + e.App + ".git"
}

// Settings is the normalised content of an apps file.
// It is not modified after loading.
type Settings struct {
	names []string
	envs  map[string]Environment
}

// NewSettings builds Settings from environments in the given order.
// Environments with a nil Config get an empty one.
func NewSettings(envs ...Environment) (*Settings, error) {
	s := &Settings{envs: make(map[string]Environment, len(envs))}
	for _, env := range envs {
		if err := s.add(env); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Settings) add(env Environment) error {
	if env.Name == "" {
		return errors.New("app name must not be empty")
	}
	if _, dup := s.envs[env.Name]; dup {
		return fmt.Errorf("app %q defined twice", env.Name)
	}
	if env.App == "" {
		env.App = env.Name
	}
	if env.Config == nil {
		env.Config = map[string]string{}
	}
	s.names = append(s.names, env.Name)
	s.envs[env.Name] = env
	return nil
}

// Names returns every environment name in file order.
func (s *Settings) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of environments.
func (s *Settings) Len() int {
	return len(s.names)
}

// Has reports whether name is a known environment.
func (s *Settings) Has(name string) bool {
	_, ok := s.envs[name]
	return ok
}

// Get returns the environment called name.
func (s *Settings) Get(name string) (Environment, bool) {
	env, ok := s.envs[name]
	return env, ok
}

// Suggest returns the known environment name closest to name, for
// "did you mean" hints.
func (s *Settings) Suggest(name string) (string, bool) {
	matches := fuzzy.Find(name, s.names)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}

// Load reads the apps file at path.
// A missing file yields empty Settings and no error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{envs: map[string]Environment{}}, nil
		}
		return nil, fmt.Errorf("failed to read apps file: %w", err)
	}

	settings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Parse decodes apps file content in either shape.
func Parse(data []byte) (*Settings, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	settings := &Settings{envs: map[string]Environment{}}

	root := documentRoot(&doc)
	if root == nil || isNull(root) {
		return settings, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("apps file must be a mapping of app names, got %s", kindName(root))
	}

	if lookup(root, legacyAppsKey) != nil {
		return settings, parseLegacy(root, settings)
	}
	return settings, parseCurrent(root, settings)
}

// rawEnvironment is one block of the current shape.
type rawEnvironment struct {
	App    string               `yaml:"app"`
	Config map[string]yaml.Node `yaml:"config"`
}

func parseCurrent(root *yaml.Node, settings *Settings) error {
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		body := resolve(root.Content[i+1])

		env := Environment{Name: name}
		if !isNull(body) {
			if body.Kind != yaml.MappingNode {
				return fmt.Errorf("app %q: expected a mapping with app and config, got %s", name, kindName(body))
			}
			var raw rawEnvironment
			if err := body.Decode(&raw); err != nil {
				return fmt.Errorf("app %q: %w", name, err)
			}
			config, err := scalarMap(name, raw.Config)
			if err != nil {
				return err
			}
			env.App = raw.App
			env.Config = config
		}

		if err := settings.add(env); err != nil {
			return err
		}
	}
	return nil
}

func parseLegacy(root *yaml.Node, settings *Settings) error {
	appsNode := resolve(lookup(root, legacyAppsKey))
	if isNull(appsNode) {
		return nil
	}
	if appsNode.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: expected a mapping of name to heroku app, got %s", legacyAppsKey, kindName(appsNode))
	}

	var rawConfig map[string]map[string]yaml.Node
	if configNode := lookup(root, legacyConfigKey); configNode != nil {
		if err := configNode.Decode(&rawConfig); err != nil {
			return fmt.Errorf("%s: %w", legacyConfigKey, err)
		}
	}
	shared, err := scalarMap(legacySharedKey, rawConfig[legacySharedKey])
	if err != nil {
		return err
	}

	for i := 0; i+1 < len(appsNode.Content); i += 2 {
		name := appsNode.Content[i].Value
		appNode := resolve(appsNode.Content[i+1])
		if appNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("app %q: expected a heroku app name, got %s", name, kindName(appNode))
		}

		own, err := scalarMap(name, rawConfig[name])
		if err != nil {
			return err
		}
		config := make(map[string]string, len(shared)+len(own))
		for k, v := range shared {
			config[k] = v
		}
		for k, v := range own {
			config[k] = v
		}

		env := Environment{Name: name, Config: config}
		if !isNull(appNode) {
			env.App = appNode.Value
		}
		if err := settings.add(env); err != nil {
			return err
		}
	}
	return nil
}

// scalarMap converts decoded config values to their literal text.
func scalarMap(name string, raw map[string]yaml.Node) (map[string]string, error) {
	config := make(map[string]string, len(raw))
	for key, node := range raw {
		n := resolve(&node)
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("app %q: config %s must be a scalar, got %s", name, key, kindName(n))
		}
		if isNull(n) {
			config[key] = ""
			continue
		}
		config[key] = n.Value
	}
	return config, nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}

// lookup returns the value node for key in a mapping node.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// resolve follows aliases to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return fmt.Sprintf("%q", n.Value)
	default:
		return "an unexpected node"
	}
}
