package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccp-p/audio-transcriber/pkg/models"
)

func newTestResult(sourcePath string) *models.TranscriptResult {
	return &models.TranscriptResult{
		SourcePath:  sourcePath,
		Text:        "hello from whisper",
		Chunked:     true,
		ChunkCount:  3,
		ChunkTexts:  []string{"hello", "from", "whisper"},
		DurationMs:  81920,
		ProcessedAt: time.Now(),
	}
}

func TestExportTextDefaultPath(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "song.mp3")

	// 未指定输出目录时保存在音频文件旁边
	exporter := NewTranscriptExporter("")
	outputPath, err := exporter.ExportText(newTestResult(audioPath))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "song_transcript.txt"), outputPath)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "hello from whisper", string(content))
}

func TestExportTextOutputFolder(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "dest")
	audioPath := filepath.Join(t.TempDir(), "song.wav")

	exporter := NewTranscriptExporter(outputDir)
	outputPath, err := exporter.ExportText(newTestResult(audioPath))
	require.NoError(t, err)

	// 输出目录自动创建，文件名仍为 <原名>_transcript.txt
	assert.Equal(t, filepath.Join(outputDir, "song_transcript.txt"), outputPath)
	assert.FileExists(t, outputPath)
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "song.mp3")
	result := newTestResult(audioPath)

	exporter := NewTranscriptExporter("")
	jsonPath, err := exporter.ExportJSON(result)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "song_transcript.json"), jsonPath)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var loaded models.TranscriptResult
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, result.Text, loaded.Text)
	assert.Equal(t, result.ChunkCount, loaded.ChunkCount)
	assert.Equal(t, result.ChunkTexts, loaded.ChunkTexts)
}
