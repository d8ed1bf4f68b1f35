package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesFourDigitCode(t *testing.T) {
	cache := NewCache(time.Minute)

	code, err := cache.Generate("intern@example.com")
	require.NoError(t, err)
	assert.Len(t, code, 4)
}

func TestValidateConsumesCode(t *testing.T) {
	cache := NewCache(time.Minute)

	code, err := cache.Generate("intern@example.com")
	require.NoError(t, err)

	assert.True(t, cache.Validate("intern@example.com", code))
	// Single use: the same code must not validate twice.
	assert.False(t, cache.Validate("intern@example.com", code))
}

func TestValidateRejectsWrongCode(t *testing.T) {
	cache := NewCache(time.Minute)

	code, err := cache.Generate("intern@example.com")
	require.NoError(t, err)

	assert.False(t, cache.Validate("intern@example.com", "0000-not-it"))
	// Wrong attempts do not consume the entry.
	assert.True(t, cache.Validate("intern@example.com", code))
}

func TestValidateRejectsUnknownEmail(t *testing.T) {
	cache := NewCache(time.Minute)
	assert.False(t, cache.Validate("nobody@example.com", "1234"))
}

func TestValidateRejectsExpiredCode(t *testing.T) {
	cache := NewCache(time.Minute)
	current := time.Now()
	cache.now = func() time.Time { return current }

	code, err := cache.Generate("intern@example.com")
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	assert.False(t, cache.Validate("intern@example.com", code))
}

func TestGenerateReplacesPreviousCode(t *testing.T) {
	cache := NewCache(time.Minute)

	first, err := cache.Generate("intern@example.com")
	require.NoError(t, err)
	second, err := cache.Generate("intern@example.com")
	require.NoError(t, err)

	if first != second {
		assert.False(t, cache.Validate("intern@example.com", first))
	}
	assert.True(t, cache.Validate("intern@example.com", second))
}
