package apps

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/herokusan/san/internal/log"
)

// AllApps is the aggregate token that selects every environment.
const AllApps = "all"

// ErrNoApps is returned when an operation needs apps but none are selected.
var ErrNoApps = errors.New("no apps selected")

// BranchFunc reads the current source-control branch.
type BranchFunc func(ctx context.Context) (string, error)

// Selection is the ordered set of environments an operation runs against.
type Selection struct {
	settings *Settings
	branch   BranchFunc
	selected []string
}

// NewSelection creates an empty selection over settings. branch may be nil,
// which disables branch-name defaulting.
func NewSelection(settings *Settings, branch BranchFunc) *Selection {
	return &Selection{settings: settings, branch: branch}
}

// Settings returns the settings the selection draws from.
func (s *Selection) Settings() *Settings {
	return s.settings
}

// Append adds known, not yet selected names in order. AllApps expands to
// every environment. Unknown names are returned and otherwise ignored.
func (s *Selection) Append(names ...string) (unknown []string) {
	for _, name := range names {
		if name == AllApps {
			for _, n := range s.settings.names {
				s.add(n)
			}
			continue
		}
		if !s.settings.Has(name) {
			unknown = append(unknown, name)
			continue
		}
		s.add(name)
	}
	return unknown
}

func (s *Selection) add(name string) {
	if !slices.Contains(s.selected, name) {
		s.selected = append(s.selected, name)
	}
}

// Names returns the selected names. With nothing selected it applies
// ResolveDefault and prints its notice. The default is not stored, so a
// later Append still starts from an empty selection.
func (s *Selection) Names(ctx context.Context) []string {
	if len(s.selected) > 0 {
		return slices.Clone(s.selected)
	}

	l := log.FromContext(ctx)

	var branch string
	if s.settings.Len() > 1 && s.branch != nil {
		b, err := s.branch(ctx)
		if err != nil {
			l.Debug("branch defaulting skipped", "error", err)
		}
		branch = b
	}

	names, notice := ResolveDefault(s.settings, s.selected, branch)
	if notice != "" {
		l.Notice(notice)
	}
	return names
}

// All returns every environment name in file order.
func (s *Selection) All() []string {
	return s.settings.Names()
}

// EachApp calls fn for every selected environment in order and stops at
// the first error. Returns ErrNoApps when the selection is empty after
// defaulting.
func (s *Selection) EachApp(ctx context.Context, fn func(Environment) error) error {
	names := s.Names(ctx)
	if len(names) == 0 {
		return ErrNoApps
	}
	for _, name := range names {
		env, _ := s.settings.Get(name)
		if err := fn(env); err != nil {
			return err
		}
	}
	return nil
}

// ResolveDefault decides which environments to use when selected is empty.
// A single defined environment is picked outright. Otherwise an
// environment named exactly like branch is picked. The returned notice is
// the message to show the user, or "" when nothing was defaulted.
func ResolveDefault(settings *Settings, selected []string, branch string) ([]string, string) {
	if len(selected) > 0 {
		return slices.Clone(selected), ""
	}
	switch {
	case settings.Len() == 1:
		name := settings.names[0]
		return []string{name}, fmt.Sprintf(`Defaulting to "%s" since only one app is defined`, name)
	case branch != "" && settings.Has(branch):
		return []string{branch}, fmt.Sprintf(`Defaulting to "%s" as it matches the current branch`, branch)
	}
	return []string{}, ""
}
