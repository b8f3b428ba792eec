package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	Setup("prod", "debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Setup("prod", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Setup("prod", "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
