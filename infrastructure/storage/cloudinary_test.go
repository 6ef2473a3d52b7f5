package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/benefits-club-api/internal/config"
)

func TestDisabledUploader(t *testing.T) {
	url, err := NewDisabledUploader().Upload(context.Background(), "logo.png", strings.NewReader("png"))
	assert.Empty(t, url)
	assert.ErrorIs(t, err, ErrUploadDisabled)
}

func TestNewCloudinaryUploader(t *testing.T) {
	up, err := NewCloudinaryUploader(config.Cloudinary{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "benefit-logos",
	})
	require.NoError(t, err)

	cu, ok := up.(*cloudinaryUploader)
	require.True(t, ok)
	assert.Equal(t, "benefit-logos", cu.folder)
	assert.True(t, cu.cld.Config.URL.Secure)
}
