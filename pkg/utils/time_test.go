package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatTimeDuration(45))
	assert.Equal(t, "2m 5s", FormatTimeDuration(125))
	assert.Equal(t, "1h 1m 1s", FormatTimeDuration(3661))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512.00 B", FormatFileSize(512))
	assert.Equal(t, "1.00 KB", FormatFileSize(1024))
	assert.Equal(t, "25.00 MB", FormatFileSize(25*1024*1024))
	assert.Equal(t, "1.50 GB", FormatFileSize(3*1024*1024*1024/2))
}
