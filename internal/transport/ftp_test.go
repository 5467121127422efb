package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSSputnik/RVEZeitmessung/internal/conf"
	"github.com/MSSputnik/RVEZeitmessung/internal/errors"
)

func TestNewUploaderRequiresHost(t *testing.T) {
	_, err := NewUploader(&UploaderConfig{})
	require.Error(t, err)

	var enhanced *errors.EnhancedError
	require.True(t, errors.As(err, &enhanced))
	assert.Equal(t, string(errors.CategoryConfiguration), enhanced.GetCategory())
}

func TestNewUploaderDefaults(t *testing.T) {
	uploader, err := NewUploader(&UploaderConfig{Host: "ftp.example.org"})
	require.NoError(t, err)

	assert.Equal(t, defaultFTPPort, uploader.config.Port)
	assert.Equal(t, defaultTimeout, uploader.config.Timeout)
	assert.Equal(t, defaultMaxRetries, uploader.config.MaxRetries)
	assert.Equal(t, defaultRetryBackoff, uploader.config.RetryBackoff)
}

func TestFromSettings(t *testing.T) {
	settings := &conf.Settings{}
	settings.FTP.Host = "results.example.org"
	settings.FTP.Port = 2121
	settings.FTP.User = "zeit"
	settings.FTP.Password = "secret"
	settings.FTP.Directory = "upload"
	settings.FTP.Timeout = 10

	uploader, err := FromSettings(settings)
	require.NoError(t, err)

	assert.Equal(t, "results.example.org", uploader.config.Host)
	assert.Equal(t, 2121, uploader.config.Port)
	assert.Equal(t, "upload", uploader.config.Directory)
	assert.Equal(t, 10*time.Second, uploader.config.Timeout)
}

func TestIsTransientError(t *testing.T) {
	assert.False(t, isTransientError(nil))
	assert.False(t, isTransientError(errors.NewStd("530 login incorrect")))
	assert.True(t, isTransientError(errors.NewStd("dial tcp: i/o timeout")))
	assert.True(t, isTransientError(errors.NewStd("connection reset by peer")))
	assert.True(t, isTransientError(errors.NewStd("connect: connection refused")))
}
