package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	text, err := StaticProvider{Text: "Keep logging."}.Complete(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "Keep logging.", text)

	_, err = StaticProvider{}.Complete(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoInsight)

	offline := errors.New("offline")
	_, err = StaticProvider{Err: offline}.Complete(context.Background(), "", "")
	assert.ErrorIs(t, err, offline)
}
