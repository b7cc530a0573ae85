// Package cmd runs the external tools san drives: the heroku CLI and git.
//
// Two styles are provided. [RunContext] and [OutputContext] capture stderr
// and fold it into the returned error, which suits short queries such as
// reading the current branch. [Exec] implements [Runner] by streaming the
// child's output to the terminal, which suits long operations such as
// "heroku rake db:migrate" or "git push" where the user wants to watch
// progress.
//
// Every invocation is echoed through the context logger in verbose mode:
//
//	$ heroku restart --app awesomeapp
//	  (1.204s)
//
// Nothing here retries or times out. The only cancellation is the context,
// which the CLI ties to SIGINT/SIGTERM.
package cmd
