package nudge

// Notifier delivers a reminder for habits whose period is about to close.
type Notifier interface {
	SendNudge(habits []string) error
}
