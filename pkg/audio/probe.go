package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// Info 存储音频文件的详细信息
type Info struct {
	Path        string // 文件路径
	Format      string // 容器格式（由扩展名推断）
	SizeBytes   int64  // 文件大小（字节）
	DurationMs  int64  // 时长（毫秒）
	SampleRate  int    // 采样率（Hz）
	Channels    int    // 声道数
	SampleWidth int    // 单个采样的字节宽度
}

// Decoder 定义音频解码能力：读取元数据和导出分片
type Decoder interface {
	// Probe 读取音频文件的元数据
	Probe(ctx context.Context, path string) (*Info, error)
	// ExportChunk 将源文件的一个时间片导出为单轨mp3文件
	ExportChunk(ctx context.Context, srcPath, dstPath string, startMs, durationMs int64) error
}

// formatMap 支持的扩展名到ffmpeg容器格式的映射，对齐Whisper接口支持的格式
var formatMap = map[string]string{
	"mp3":  "mp3",
	"wav":  "wav",
	"flac": "flac",
	"m4a":  "mp4",
	"ogg":  "ogg",
	"wma":  "wma",
	"aac":  "aac",
}

// SupportedFormat 判断扩展名是否为支持的音频格式
func SupportedFormat(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	_, ok := formatMap[ext]
	return ok
}

// FFmpegDecoder 基于ffmpeg/ffprobe实现的解码器
type FFmpegDecoder struct{}

// NewFFmpegDecoder 创建ffmpeg解码器
func NewFFmpegDecoder() *FFmpegDecoder {
	return &FFmpegDecoder{}
}

// Probe 通过ffprobe读取音频元数据
// ffprobe缺失时返回missing_dependency错误，文件无法识别时返回unsupported_format错误
func (d *FFmpegDecoder) Probe(ctx context.Context, path string) (*Info, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	format, ok := formatMap[ext]
	if !ok {
		return nil, utils.NewError(utils.KindUnsupportedFormat,
			fmt.Sprintf("不支持的音频格式: %s", ext), nil)
	}

	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, utils.NewError(utils.KindMissingDependency,
			utils.FFmpegInstallHint(), err)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=sample_rate,channels,bits_per_sample",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, utils.NewError(utils.KindUnsupportedFormat,
			fmt.Sprintf("无法解析音频文件 %s: %s", filepath.Base(path), detail), err)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) < 4 {
		return nil, utils.NewError(utils.KindUnsupportedFormat,
			fmt.Sprintf("无法解析媒体信息: %s", filepath.Base(path)), nil)
	}

	// ffprobe按 stream 条目在前、format 条目在后的顺序输出
	sampleRate, _ := strconv.Atoi(strings.TrimSpace(lines[0]))
	channels, _ := strconv.Atoi(strings.TrimSpace(lines[1]))
	bitsPerSample, _ := strconv.Atoi(strings.TrimSpace(lines[2]))
	duration, _ := strconv.ParseFloat(strings.TrimSpace(lines[3]), 64)

	// 有损格式不报告采样位宽，按16bit PCM处理
	sampleWidth := bitsPerSample / 8
	if sampleWidth == 0 {
		sampleWidth = 2
	}

	var size int64
	if fileInfo, err := os.Stat(path); err == nil {
		size = fileInfo.Size()
	}

	info := &Info{
		Path:        path,
		Format:      format,
		SizeBytes:   size,
		DurationMs:  int64(duration * 1000),
		SampleRate:  sampleRate,
		Channels:    channels,
		SampleWidth: sampleWidth,
	}

	utils.Debug("音频信息: %s 采样率=%dHz 声道=%d 位宽=%d字节 时长=%dms",
		filepath.Base(path), info.SampleRate, info.Channels, info.SampleWidth, info.DurationMs)

	return info, nil
}

// ExportChunk 使用ffmpeg将[startMs, startMs+durationMs)的时间片导出为mp3
func (d *FFmpegDecoder) ExportChunk(ctx context.Context, srcPath, dstPath string, startMs, durationMs int64) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return utils.NewError(utils.KindMissingDependency,
			utils.FFmpegInstallHint(), err)
	}

	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-v", "error",
		"-y", // 覆盖已存在的文件
		"-i", srcPath,
		"-ss", formatSeconds(startMs),
		"-t", formatSeconds(durationMs),
		"-vn",
		"-codec:a", "libmp3lame",
		"-q:a", "2",
		dstPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return utils.NewError(utils.KindIO,
			fmt.Sprintf("导出分片失败 %s: %s", filepath.Base(dstPath), strings.TrimSpace(stderr.String())), err)
	}

	// 检查文件是否成功生成
	if _, err := os.Stat(dstPath); err != nil {
		return utils.NewError(utils.KindIO,
			fmt.Sprintf("导出的分片文件不存在: %s", dstPath), err)
	}

	return nil
}

// formatSeconds 将毫秒格式化为ffmpeg可接受的秒数表示
func formatSeconds(ms int64) string {
	return fmt.Sprintf("%.3f", float64(ms)/1000.0)
}
