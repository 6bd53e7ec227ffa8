package outbound

// Reporter receives watch lifecycle notifications for display. The engine
// never depends on what an implementation does with them.
type Reporter interface {
	// called once after the initial scan seeded the change store
	OnStart()

	// called with the expanded shell command right before it runs
	OnCommandAbout(command string)

	// called with the callback message or the command standard output
	OnSuccess(output string)

	// called with the failure message or the command standard error
	OnError(output string)

	// called after every dispatched action
	OnSeparator()
}
