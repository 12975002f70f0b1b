package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv_ReturnsValue(t *testing.T) {
	os.Setenv("FOO", "bar")
	defer os.Unsetenv("FOO")
	val := GetEnv("FOO", "default")
	assert.Equal(t, "bar", val)
}

func TestGetEnv_ReturnsDefault(t *testing.T) {
	os.Unsetenv("FOO")
	val := GetEnv("FOO", "default")
	assert.Equal(t, "default", val)
}

func TestMustGetEnv_ReturnsValue(t *testing.T) {
	os.Setenv("FOO", "bar")
	defer os.Unsetenv("FOO")
	val := MustGetEnv("FOO")
	assert.Equal(t, "bar", val)
}

func TestMustGetEnv_PanicsIfUnset(t *testing.T) {
	os.Unsetenv("FOO")
	original := logger
	logger = nil // Ensure panic, not os.Exit
	defer func() { logger = original }()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustGetEnv did not panic when env var was missing")
		}
	}()
	_ = MustGetEnv("FOO")
}

func TestGetEnvBool(t *testing.T) {
	testCases := []struct {
		name     string
		value    *string
		def      bool
		expected bool
	}{
		{"unset uses default", nil, true, true},
		{"true", strPtr("true"), false, true},
		{"one", strPtr("1"), false, true},
		{"false", strPtr("false"), true, false},
		{"garbage uses default", strPtr("maybe"), true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.value == nil {
				os.Unsetenv("BOOL_KEY")
			} else {
				t.Setenv("BOOL_KEY", *tc.value)
			}
			assert.Equal(t, tc.expected, GetEnvBool("BOOL_KEY", tc.def))
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Unsetenv("INT_KEY")
	assert.Equal(t, 7, GetEnvInt("INT_KEY", 7))

	t.Setenv("INT_KEY", "42")
	assert.Equal(t, 42, GetEnvInt("INT_KEY", 7))

	t.Setenv("INT_KEY", "forty-two")
	assert.Equal(t, 7, GetEnvInt("INT_KEY", 7))
}

func strPtr(s string) *string {
	return &s
}
