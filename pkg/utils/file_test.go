package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTranscriptPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/x", "song_transcript.txt"),
		DefaultTranscriptPath(filepath.Join("/x", "song.mp3")))

	assert.Equal(t, filepath.Join("/a/b", "会议录音_transcript.txt"),
		DefaultTranscriptPath(filepath.Join("/a/b", "会议录音.m4a")))

	// 无扩展名的文件直接追加后缀
	assert.Equal(t, "recording_transcript.txt", DefaultTranscriptPath("recording"))
}

func TestCheckFileExists(t *testing.T) {
	dir := t.TempDir()

	filePath := filepath.Join(dir, "test.txt")
	assert.False(t, CheckFileExists(filePath))

	assert.NoError(t, os.WriteFile(filePath, []byte("data"), 0644))
	assert.True(t, CheckFileExists(filePath))

	// 目录不算文件
	assert.False(t, CheckFileExists(dir))
}

func TestEnsureDirExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	assert.False(t, CheckDirExists(dir))
	assert.NoError(t, EnsureDirExists(dir))
	assert.True(t, CheckDirExists(dir))

	// 已存在时不报错
	assert.NoError(t, EnsureDirExists(dir))

	// 空路径视为可选
	assert.NoError(t, EnsureDirExists(""))
}
