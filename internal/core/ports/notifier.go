package ports

// Notifier surfaces operation outcomes to the user. It is the client's toast
// analogue: workflow and facade code report through it instead of returning
// raw errors to views.
type Notifier interface {
	Success(title, detail string)
	Failure(title, detail string)
}
