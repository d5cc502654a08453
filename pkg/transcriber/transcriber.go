package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ccp-p/audio-transcriber/pkg/audio"
	"github.com/ccp-p/audio-transcriber/pkg/models"
	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// Transcriber 音频转写器，负责直接转写和分片转写两条路径
type Transcriber struct {
	config  *models.Config
	service Service
	decoder audio.Decoder
}

// New 创建音频转写器
// API密钥等配置由调用方显式传入，不读取进程环境
func New(config *models.Config, service Service, decoder audio.Decoder) *Transcriber {
	return &Transcriber{
		config:  config,
		service: service,
		decoder: decoder,
	}
}

// Transcribe 转写单个音频文件
// 小于大小上限的文件整体转写，超过上限的文件分片转写后合并
// callback可为nil，仅用于进度展示
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string, callback ProgressCallback) (*models.TranscriptResult, error) {
	notify(callback, "检查文件大小...")

	fileInfo, err := os.Stat(audioPath)
	if err != nil {
		return nil, utils.NewError(utils.KindIO,
			fmt.Sprintf("读取音频文件失败: %s", audioPath), err)
	}

	size := fileInfo.Size()
	result := &models.TranscriptResult{SourcePath: audioPath}

	switch DecideRoute(size, t.config.MaxFileSizeBytes()) {
	case RouteDirect:
		notify(callback, fmt.Sprintf("文件大小: %s - 直接转写...", utils.FormatFileSize(size)))

		text, err := t.service.Transcribe(ctx, audioPath)
		if err != nil {
			return nil, err
		}
		result.Text = text

	case RouteChunked:
		notify(callback, fmt.Sprintf("文件大小: %s - 分片转写...", utils.FormatFileSize(size)))

		if err := t.transcribeLargeFile(ctx, audioPath, result, callback); err != nil {
			return nil, err
		}
	}

	result.ProcessedAt = time.Now()
	return result, nil
}

// transcribeLargeFile 分片转写超大文件：探测 → 分片 → 逐个转写 → 合并
// 分片文件和工作目录在所有退出路径上都会被清理，失败时丢弃已完成的部分结果
func (t *Transcriber) transcribeLargeFile(ctx context.Context, audioPath string, result *models.TranscriptResult, callback ProgressCallback) error {
	notify(callback, "加载音频文件...")

	info, err := t.decoder.Probe(ctx, audioPath)
	if err != nil {
		return err
	}

	notify(callback, "计算分片方案...")

	chunkLengthMs, err := ComputeChunkLengthMs(t.config.ChunkSizeBytes(), info)
	if err != nil {
		return err
	}

	chunks, err := SplitChunks(info.DurationMs, chunkLengthMs)
	if err != nil {
		return err
	}

	notify(callback, fmt.Sprintf("音频分为 %d 个分片", len(chunks)))

	if err := utils.EnsureDirExists(t.config.TempDir); err != nil {
		return utils.NewError(utils.KindIO, "创建临时目录失败", err)
	}

	workDir, err := os.MkdirTemp(t.config.TempDir, "chunks_")
	if err != nil {
		return utils.NewError(utils.KindIO, "创建分片工作目录失败", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			utils.Warn("清理分片工作目录失败: %v", err)
		}
	}()

	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		notify(callback, fmt.Sprintf("处理分片 %d/%d...", chunk.Index+1, len(chunks)))

		text, err := t.transcribeChunk(ctx, audioPath, workDir, chunk)
		if err != nil {
			return err
		}
		texts = append(texts, text)

		notify(callback, fmt.Sprintf("分片 %d/%d 完成", chunk.Index+1, len(chunks)))
	}

	notify(callback, "合并转写结果...")

	result.Text = MergeTexts(texts)
	result.Chunked = true
	result.ChunkCount = len(chunks)
	result.ChunkTexts = texts
	result.DurationMs = info.DurationMs

	return nil
}

// transcribeChunk 导出单个分片并转写，分片文件在函数返回前删除（无论成功与否）
func (t *Transcriber) transcribeChunk(ctx context.Context, audioPath, workDir string, chunk Chunk) (string, error) {
	chunkPath := filepath.Join(workDir, fmt.Sprintf("chunk_%d.mp3", chunk.Index))

	if err := t.decoder.ExportChunk(ctx, audioPath, chunkPath, chunk.StartMs, chunk.DurationMs); err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(chunkPath); err != nil && !os.IsNotExist(err) {
			utils.Warn("删除分片文件失败: %v", err)
		}
	}()

	return t.service.Transcribe(ctx, chunkPath)
}

// notify 向进度回调发送消息，回调为nil时忽略
func notify(callback ProgressCallback, message string) {
	if callback != nil {
		callback(message)
	}
}
