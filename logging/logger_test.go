package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production", ""} {
		logger := New(env)
		assert.NotNil(t, logger, env)
		logger.Debugw("logger ready", "environment", env)
	}
}

func TestNop(t *testing.T) {
	assert.NotNil(t, Nop())
}
