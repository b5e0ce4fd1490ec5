package insight

import "context"

// StaticProvider answers every request with a fixed text. It backs offline
// deployments and tests.
type StaticProvider struct {
	Text string
	Err  error
}

func (provider StaticProvider) Complete(context.Context, string, string) (string, error) {
	if provider.Err != nil {
		return "", provider.Err
	}
	if provider.Text == "" {
		return "", ErrNoInsight
	}
	return provider.Text, nil
}
