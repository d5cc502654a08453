package transcriber

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccp-p/audio-transcriber/pkg/audio"
	"github.com/ccp-p/audio-transcriber/pkg/models"
	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// fakeDecoder 测试用解码器，返回预设的音频信息，导出分片时写入占位文件
type fakeDecoder struct {
	info       *audio.Info
	probeCalls int
	exported   []string
}

func (d *fakeDecoder) Probe(ctx context.Context, path string) (*audio.Info, error) {
	d.probeCalls++
	info := *d.info
	info.Path = path
	return &info, nil
}

func (d *fakeDecoder) ExportChunk(ctx context.Context, srcPath, dstPath string, startMs, durationMs int64) error {
	d.exported = append(d.exported, dstPath)
	return os.WriteFile(dstPath, []byte("chunk"), 0644)
}

// fakeService 测试用转写服务，按调用顺序返回预设文本，可指定某次调用失败
type fakeService struct {
	texts  []string
	failAt int // 第几次调用失败（从1开始），0表示不失败
	calls  int
	paths  []string
}

func (s *fakeService) Transcribe(ctx context.Context, audioPath string) (string, error) {
	s.calls++
	s.paths = append(s.paths, audioPath)
	if s.failAt > 0 && s.calls == s.failAt {
		return "", utils.NewError(utils.KindTranscriptionService, "模拟转写失败", errors.New("boom"))
	}
	return s.texts[s.calls-1], nil
}

// newTestConfig 阈值设为1MB以便用小文件触发分片路径
func newTestConfig(t *testing.T) *models.Config {
	config := models.NewDefaultConfig()
	config.MaxFileSizeMB = 1
	config.ChunkSizeMB = 1
	config.TempDir = t.TempDir()
	require.NoError(t, config.Validate())
	return config
}

// writeAudioFile 生成指定大小的测试文件
func writeAudioFile(t *testing.T, size int) string {
	path := filepath.Join(t.TempDir(), "input.mp3")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x01}, size), 0644))
	return path
}

func TestTranscribeDirect(t *testing.T) {
	config := newTestConfig(t)
	decoder := &fakeDecoder{}
	service := &fakeService{texts: []string{"直接转写结果"}}

	// 小于1MB阈值的文件直接转写
	path := writeAudioFile(t, 1024)

	tr := New(config, service, decoder)
	result, err := tr.Transcribe(context.Background(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, "直接转写结果", result.Text)
	assert.False(t, result.Chunked)
	assert.Equal(t, 0, result.ChunkCount)

	// 直接路径对原始文件执行一次调用，不需要探测
	assert.Equal(t, []string{path}, service.paths)
	assert.Equal(t, 0, decoder.probeCalls)
}

func TestTranscribeChunked(t *testing.T) {
	config := newTestConfig(t)

	// 16kHz单声道16bit: 比特率256000 b/s，1MB预算对应32768ms分片
	// 81920ms → 32768 + 32768 + 16384，共3个分片
	decoder := &fakeDecoder{info: &audio.Info{
		DurationMs:  81920,
		SampleRate:  16000,
		Channels:    1,
		SampleWidth: 2,
	}}
	service := &fakeService{texts: []string{"hello", "from", "whisper"}}

	path := writeAudioFile(t, 1024*1024+10)

	var messages []string
	tr := New(config, service, decoder)
	result, err := tr.Transcribe(context.Background(), path, func(message string) {
		messages = append(messages, message)
	})
	require.NoError(t, err)

	// 合并结果为分片文本按顺序的空格拼接
	assert.Equal(t, "hello from whisper", result.Text)
	assert.True(t, result.Chunked)
	assert.Equal(t, 3, result.ChunkCount)
	assert.Equal(t, []string{"hello", "from", "whisper"}, result.ChunkTexts)
	assert.Equal(t, int64(81920), result.DurationMs)

	// 每个分片导出一次并转写一次
	assert.Len(t, decoder.exported, 3)
	assert.Equal(t, decoder.exported, service.paths)

	// 分片文件和工作目录在运行结束后全部清理
	for _, chunkPath := range decoder.exported {
		assert.NoFileExists(t, chunkPath)
	}
	entries, err := os.ReadDir(config.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// 进度消息按阶段产生
	assert.NotEmpty(t, messages)
	assert.Contains(t, messages, "音频分为 3 个分片")
}

func TestTranscribeChunkedFailureCleanup(t *testing.T) {
	config := newTestConfig(t)

	decoder := &fakeDecoder{info: &audio.Info{
		DurationMs:  81920,
		SampleRate:  16000,
		Channels:    1,
		SampleWidth: 2,
	}}
	// 第2个分片转写失败
	service := &fakeService{texts: []string{"hello", "", ""}, failAt: 2}

	path := writeAudioFile(t, 1024*1024+10)

	tr := New(config, service, decoder)
	result, err := tr.Transcribe(context.Background(), path, nil)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, utils.IsKind(err, utils.KindTranscriptionService))

	// 第3个分片不再处理
	assert.Equal(t, 2, service.calls)
	assert.Len(t, decoder.exported, 2)

	// 已导出的分片文件和整个工作目录必须被清理
	for _, chunkPath := range decoder.exported {
		assert.NoFileExists(t, chunkPath)
	}
	entries, err := os.ReadDir(config.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTranscribeMissingFile(t *testing.T) {
	config := newTestConfig(t)
	tr := New(config, &fakeService{}, &fakeDecoder{})

	_, err := tr.Transcribe(context.Background(), filepath.Join(t.TempDir(), "不存在.mp3"), nil)
	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindIO))
}
