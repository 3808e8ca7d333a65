package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBPoolRequiresURL(t *testing.T) {
	_, err := NewDBPool(context.Background(), &Config{})
	require.Error(t, err)

	_, err = NewDBPool(context.Background(), nil)
	require.Error(t, err)
}

func TestNewDBPoolRejectsMalformedURL(t *testing.T) {
	_, err := NewDBPool(context.Background(), &Config{DatabaseURL: "postgres://%zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse database url")
}
