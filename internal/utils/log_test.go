package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	old := Log.GetLevel()
	t.Cleanup(func() {
		Log.SetLevel(old)
	})

	require.NoError(t, SetLogLevel("DEBUG"))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	require.NoError(t, SetLogLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	assert.Error(t, SetLogLevel("verbose"))
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
}
