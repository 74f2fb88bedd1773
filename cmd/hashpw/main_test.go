package main

import (
	"bytes"
	"strings"
	"testing"

	"bookcatalog/internal/platform/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FromFlag(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-password", "Str0ng!Pass"}, strings.NewReader(""), &out))

	hash := strings.TrimSpace(out.String())
	assert.True(t, crypto.VerifyPassword(hash, "Str0ng!Pass"))
}

func TestRun_FromStdin(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, strings.NewReader("Str0ng!Pass\n"), &out))

	hash := strings.TrimSpace(out.String())
	assert.True(t, crypto.VerifyPassword(hash, "Str0ng!Pass"))
}

func TestRun_Rejects(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Error(t, run(nil, strings.NewReader("\n"), &bytes.Buffer{}))
	})

	t.Run("weak", func(t *testing.T) {
		err := run([]string{"-password", "password"}, nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, crypto.ErrPasswordNoUpper)
	})

	t.Run("weak allowed", func(t *testing.T) {
		assert.NoError(t, run([]string{"-password", "password", "-allow-weak"}, nil, &bytes.Buffer{}))
	})
}
