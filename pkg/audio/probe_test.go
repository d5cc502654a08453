package audio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

func TestSupportedFormat(t *testing.T) {
	assert.True(t, SupportedFormat("song.mp3"))
	assert.True(t, SupportedFormat("/a/b/SONG.M4A"))
	assert.True(t, SupportedFormat("语音备忘录.wav"))

	assert.False(t, SupportedFormat("video.mp4"))
	assert.False(t, SupportedFormat("notes.txt"))
	assert.False(t, SupportedFormat("noext"))
}

func TestProbeUnsupportedExtension(t *testing.T) {
	decoder := NewFFmpegDecoder()

	// 扩展名无法识别时在调用ffprobe之前就返回格式错误
	for _, path := range []string{"notes.txt", "video.mp4", "noext"} {
		info, err := decoder.Probe(context.Background(), path)
		assert.Nil(t, info)
		assert.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.KindUnsupportedFormat), path)
		assert.False(t, utils.IsKind(err, utils.KindMissingDependency), path)
	}
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.000", formatSeconds(0))
	assert.Equal(t, "32.768", formatSeconds(32768))
	assert.Equal(t, "0.001", formatSeconds(1))
}
