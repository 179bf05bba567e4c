package nudge

type mockNotifier struct {
	sent [][]string
}

func (m *mockNotifier) SendNudge(habits []string) error {
	m.sent = append(m.sent, habits)
	return nil
}

var _ Notifier = (*mockNotifier)(nil)
