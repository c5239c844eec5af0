package mock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolFactoryIsPool(t *testing.T) {
	factory := NewPoolFactory()
	registered := addr(10)
	unregistered := addr(11)

	ok, err := factory.IsPool(registered)
	require.NoError(t, err)
	require.False(t, ok)

	factory.Register(registered)

	ok, err = factory.IsPool(registered)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = factory.IsPool(unregistered)
	require.NoError(t, err)
	require.False(t, ok)
}
