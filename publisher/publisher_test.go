package publisher

import (
	"testing"

	"github.com/aspkit/asppack/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix, version, name string
		want                  string
	}{
		{"releases", "1.4.0", "asp-1.4.0-Linux.tar.gz", "releases/1.4.0/asp-1.4.0-Linux.tar.gz"},
		{"/releases/", "1.4.0", "asp.zip", "releases/1.4.0/asp.zip"},
		{"", "1.4.0", "asp.zip", "1.4.0/asp.zip"},
		{"releases", "", "asp.zip", "releases/snapshot/asp.zip"},
		{"releases", "1.4.0", "nested/dir/asp.zip", "releases/1.4.0/asp.zip"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ObjectKey(tt.prefix, tt.version, tt.name))
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/gzip", ContentType("asp-1.4.0-Source.tar.gz"))
	assert.Equal(t, "application/x-bzip2", ContentType("asp-1.4.0-Linux.tar.bz2"))
	assert.Equal(t, "application/zip", ContentType("asp-1.4.0-Source.zip"))
	assert.Equal(t, "text/plain; charset=utf-8", ContentType("SHA256SUMS"))
	assert.Equal(t, "application/vnd.microsoft.portable-executable", ContentType("asp-1.4.0-win64.exe"))
	assert.Equal(t, "application/x-msi", ContentType("asp-1.4.0-win64.msi"))
	assert.Equal(t, "application/octet-stream", ContentType("README"))
}

func TestNewS3StoreValidation(t *testing.T) {
	valid := config.PublishConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "asp-releases",
		Prefix:    "releases",
	}
	tests := []struct {
		name   string
		mutate func(c *config.PublishConfig)
	}{
		{"no endpoint", func(c *config.PublishConfig) { c.Endpoint = "" }},
		{"no access key", func(c *config.PublishConfig) { c.AccessKey = " " }},
		{"no secret key", func(c *config.PublishConfig) { c.SecretKey = "" }},
		{"no bucket", func(c *config.PublishConfig) { c.Bucket = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			_, err := NewS3Store(c)
			assert.Error(t, err)
		})
	}

	store, err := NewS3Store(valid)
	require.NoError(t, err)
	assert.Equal(t, "s3", store.Name())
	assert.Equal(t, "asp-releases", store.Bucket())
	assert.Equal(t, "us-east-1", store.region)
}
