// Package heroku issues the per-app operations san performs by shelling out
// to the heroku and git command-line tools.
//
// A [Client] never talks to the Heroku API. Each method builds one or more
// command lines and hands them to a [cmd.Runner], in order, stopping at the
// first failure. Failures are returned as the runner reported them so the
// caller sees the tool's own exit status.
//
//	c := heroku.New("heroku", &cmd.Exec{})
//	err := c.Migrate(ctx, "awesomeapp")
//	// heroku rake db:migrate --app awesomeapp
//	// heroku restart --app awesomeapp
package heroku
