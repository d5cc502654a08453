package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	return path
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "b.mp3")
	writeFile(t, dir, "a.wav")
	writeFile(t, dir, "c.txt")       // 非音频文件
	writeFile(t, dir, ".hidden.mp3") // 隐藏文件
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	audioScanner := NewAudioScanner()
	files, err := audioScanner.ScanDirectory(dir)
	require.NoError(t, err)

	// 只保留音频文件，按文件名排序
	require.Len(t, files, 2)
	assert.Equal(t, "a.wav", files[0].Name)
	assert.Equal(t, "b.mp3", files[1].Name)
	assert.Equal(t, ".wav", files[0].Ext)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScanDirectoryMissing(t *testing.T) {
	audioScanner := NewAudioScanner()
	_, err := audioScanner.ScanDirectory(filepath.Join(t.TempDir(), "不存在"))
	assert.Error(t, err)
}

func TestFilterNewFiles(t *testing.T) {
	files := []AudioFile{
		{Path: "/media/a.mp3"},
		{Path: "/media/b.mp3"},
		{Path: "/media/c.mp3"},
	}

	processed := map[string]bool{
		"/media/b.mp3": true,
	}

	audioScanner := NewAudioScanner()
	newFiles := audioScanner.FilterNewFiles(files, processed)

	require.Len(t, newFiles, 2)
	assert.Equal(t, "/media/a.mp3", newFiles[0].Path)
	assert.Equal(t, "/media/c.mp3", newFiles[1].Path)
}
