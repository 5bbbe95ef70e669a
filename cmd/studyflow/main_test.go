package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/studyflow.yaml", configPath([]string{"plan", "show", "--day", "tomorrow", "--config", "/etc/studyflow.yaml"}))
	assert.Equal(t, "x.yaml", configPath([]string{"--config=x.yaml", "chat", "plan", "dao"}))
	assert.Empty(t, configPath([]string{"task", "list", "--pending"}))
	assert.Empty(t, configPath([]string{"--help"}))
}
