package apps

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/herokusan/san/internal/log"
)

// fakeBranch returns a BranchFunc reporting branch and counting calls.
func fakeBranch(branch string, err error, calls *int) BranchFunc {
	return func(context.Context) (string, error) {
		if calls != nil {
			*calls++
		}
		return branch, err
	}
}

func logCtx(buf *bytes.Buffer) context.Context {
	return log.WithLogger(context.Background(), log.New(buf, false, false))
}

func TestSelection_Append(t *testing.T) {
	t.Parallel()

	s := NewSelection(loadFixture(t, "example.yml"), nil)
	ctx := context.Background()

	s.Append("production")
	if got := s.Names(ctx); !slices.Equal(got, []string{"production"}) {
		t.Fatalf("Names() = %v, want [production]", got)
	}

	s.Append("staging")
	if got := s.Names(ctx); !slices.Equal(got, []string{"production", "staging"}) {
		t.Fatalf("Names() = %v, want [production staging]", got)
	}

	unknown := s.Append("unknown")
	if got := s.Names(ctx); !slices.Equal(got, []string{"production", "staging"}) {
		t.Fatalf("Names() after unknown = %v", got)
	}
	if !slices.Equal(unknown, []string{"unknown"}) {
		t.Errorf("Append(unknown) returned %v, want [unknown]", unknown)
	}

	s.Append("production")
	if got := s.Names(ctx); !slices.Equal(got, []string{"production", "staging"}) {
		t.Errorf("Names() after duplicate = %v", got)
	}
}

func TestSelection_AppendAll(t *testing.T) {
	t.Parallel()

	t.Run("aggregate token", func(t *testing.T) {
		t.Parallel()
		s := NewSelection(loadFixture(t, "example.yml"), nil)
		s.Append(AllApps)
		if got := s.Names(context.Background()); !slices.Equal(got, s.All()) {
			t.Errorf("Names() = %v, want %v", got, s.All())
		}
	})

	t.Run("explicit list", func(t *testing.T) {
		t.Parallel()
		s := NewSelection(loadFixture(t, "example.yml"), nil)
		s.Append(s.All()...)
		if got := s.Names(context.Background()); !slices.Equal(got, s.All()) {
			t.Errorf("Names() = %v, want %v", got, s.All())
		}
	})

	t.Run("all keeps earlier order", func(t *testing.T) {
		t.Parallel()
		s := NewSelection(loadFixture(t, "example.yml"), nil)
		s.Append("demo", AllApps)
		want := []string{"demo", "production", "staging"}
		if got := s.Names(context.Background()); !slices.Equal(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
	})
}

func TestSelection_DefaultFromBranch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelection(loadFixture(t, "example.yml"), fakeBranch("staging", nil, nil))

	if got := s.Names(logCtx(&buf)); !slices.Equal(got, []string{"staging"}) {
		t.Errorf("Names() = %v, want [staging]", got)
	}
	if got := buf.String(); got != "Defaulting to \"staging\" as it matches the current branch\n" {
		t.Errorf("notice = %q", got)
	}
}

func TestSelection_BranchMatchesNothing(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		branch BranchFunc
	}{
		{"unknown branch", fakeBranch("master", nil, nil)},
		{"detached head", fakeBranch("", nil, nil)},
		{"not a repository", fakeBranch("", errors.New("fatal: not a git repository"), nil)},
		{"no branch reader", nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			s := NewSelection(loadFixture(t, "example.yml"), tt.branch)
			got := s.Names(logCtx(&buf))
			if got == nil || len(got) != 0 {
				t.Errorf("Names() = %#v, want empty", got)
			}
			if buf.Len() != 0 {
				t.Errorf("unexpected notice %q", buf.String())
			}
		})
	}
}

func TestSelection_SingleApp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	calls := 0
	s := NewSelection(loadFixture(t, "single_app.yml"), fakeBranch("staging", nil, &calls))

	if got := s.Names(logCtx(&buf)); !slices.Equal(got, []string{"production"}) {
		t.Errorf("Names() = %v, want [production]", got)
	}
	if got := buf.String(); got != "Defaulting to \"production\" since only one app is defined\n" {
		t.Errorf("notice = %q", got)
	}
	if calls != 0 {
		t.Errorf("branch read %d times, want 0 with a single app", calls)
	}
}

func TestSelection_DefaultNotCached(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	calls := 0
	s := NewSelection(loadFixture(t, "example.yml"), fakeBranch("demo", nil, &calls))
	ctx := logCtx(&buf)

	s.Names(ctx)
	s.Names(ctx)
	if calls != 2 {
		t.Errorf("branch read %d times, want 2", calls)
	}
	want := "Defaulting to \"demo\" as it matches the current branch\n"
	if got := buf.String(); got != want+want {
		t.Errorf("notices = %q, want one per read", got)
	}

	// An explicit selection after a defaulted read starts from scratch.
	s.Append("production")
	if got := s.Names(ctx); !slices.Equal(got, []string{"production"}) {
		t.Errorf("Names() = %v, want [production]", got)
	}
}

func TestSelection_EachApp(t *testing.T) {
	t.Parallel()

	t.Run("no apps", func(t *testing.T) {
		t.Parallel()
		s := NewSelection(loadFixture(t, "example.yml"), fakeBranch("master", nil, nil))
		called := false
		err := s.EachApp(context.Background(), func(Environment) error {
			called = true
			return nil
		})
		if !errors.Is(err, ErrNoApps) {
			t.Errorf("EachApp() error = %v, want ErrNoApps", err)
		}
		if called {
			t.Error("visitor called with no apps selected")
		}
	})

	t.Run("visits in selection order", func(t *testing.T) {
		t.Parallel()
		settings := loadFixture(t, "example.yml")
		s := NewSelection(settings, nil)
		s.Append("demo", "production")

		var got []Environment
		err := s.EachApp(context.Background(), func(env Environment) error {
			got = append(got, env)
			return nil
		})
		if err != nil {
			t.Fatalf("EachApp() error = %v", err)
		}
		if len(got) != 2 || got[0].Name != "demo" || got[1].Name != "production" {
			t.Fatalf("visited %+v", got)
		}
		prod, _ := settings.Get("production")
		if got[1].App != "awesomeapp" || got[1].Config["GOOGLE_ANALYTICS"] != prod.Config["GOOGLE_ANALYTICS"] {
			t.Errorf("production visit = %+v", got[1])
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()
		s := NewSelection(loadFixture(t, "example.yml"), nil)
		s.Append(AllApps)

		boom := errors.New("exit status 1")
		var visited []string
		err := s.EachApp(context.Background(), func(env Environment) error {
			visited = append(visited, env.Name)
			if env.Name == "staging" {
				return boom
			}
			return nil
		})
		if err != boom {
			t.Errorf("EachApp() error = %v, want the visitor's error unchanged", err)
		}
		if !slices.Equal(visited, []string{"production", "staging"}) {
			t.Errorf("visited %v, want to stop after staging", visited)
		}
	})
}

func TestResolveDefault(t *testing.T) {
	t.Parallel()

	multi, _ := NewSettings(Environment{Name: "production"}, Environment{Name: "staging"})
	single, _ := NewSettings(Environment{Name: "production"})
	empty, _ := NewSettings()

	tests := []struct {
		name       string
		settings   *Settings
		selected   []string
		branch     string
		want       []string
		wantNotice string
	}{
		{"explicit selection wins", multi, []string{"production"}, "staging", []string{"production"}, ""},
		{"branch match", multi, nil, "staging", []string{"staging"}, `Defaulting to "staging" as it matches the current branch`},
		{"branch mismatch", multi, nil, "feature/login", []string{}, ""},
		{"single app ignores branch", single, nil, "staging", []string{"production"}, `Defaulting to "production" since only one app is defined`},
		{"no apps", empty, nil, "production", []string{}, ""},
		{"all is not a branch match", multi, nil, "all", []string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, notice := ResolveDefault(tt.settings, tt.selected, tt.branch)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ResolveDefault() names = %v, want %v", got, tt.want)
			}
			if notice != tt.wantNotice {
				t.Errorf("ResolveDefault() notice = %q, want %q", notice, tt.wantNotice)
			}
		})
	}
}

func TestSelection_NoticeSurvivesQuiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, false, true))

	s := NewSelection(loadFixture(t, "single_app.yml"), nil)
	if got := s.Names(ctx); !slices.Equal(got, []string{"production"}) {
		t.Fatalf("Names() = %v, want [production]", got)
	}
	if got := buf.String(); got != "Defaulting to \"production\" since only one app is defined\n" {
		t.Errorf("quiet logger notice = %q", got)
	}
}
