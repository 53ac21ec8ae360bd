package compat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompat_Name(t *testing.T) {
	assert.Equal(t, DefaultProvider, (&Compat{}).Name())
	assert.Equal(t, "openrouter", (&Compat{Provider: " openrouter "}).Name())
}

func TestCompat_InitRequiresBaseURL(t *testing.T) {
	assert.Panics(t, func() {
		(&Compat{}).Init(context.Background())
	})
}
