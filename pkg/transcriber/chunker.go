package transcriber

import (
	"fmt"
	"strings"

	"github.com/ccp-p/audio-transcriber/pkg/audio"
	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// Chunk 表示待导出的一个音频时间片
type Chunk struct {
	Index      int   // 分片序号，从0开始
	StartMs    int64 // 起始时间（毫秒）
	DurationMs int64 // 时长（毫秒）
}

// ComputeChunkLengthMs 根据分片大小预算和音频属性计算分片时长（毫秒）
//
// 比特率按未压缩PCM计算（采样率 × 采样字节宽度 × 8 × 声道数）。
// 分片实际以mp3导出，体积远小于预算，因此得到的分片时长偏保守。
func ComputeChunkLengthMs(chunkSizeBytes int64, info *audio.Info) (int64, error) {
	bitrate := int64(info.SampleRate) * int64(info.SampleWidth) * 8 * int64(info.Channels)
	if bitrate <= 0 {
		return 0, utils.NewError(utils.KindInvalidAudioProperties,
			fmt.Sprintf("音频比特率异常 (采样率=%d 位宽=%d 声道=%d)，无法计算分片长度",
				info.SampleRate, info.SampleWidth, info.Channels), nil)
	}

	chunkLengthMs := chunkSizeBytes * 8 * 1000 / bitrate
	if chunkLengthMs <= 0 {
		return 0, utils.NewError(utils.KindInvalidAudioProperties,
			fmt.Sprintf("计算得到的分片长度异常: %dms", chunkLengthMs), nil)
	}

	return chunkLengthMs, nil
}

// SplitChunks 将总时长划分为连续的分片序列
// 除最后一个分片外均为chunkLengthMs，最后一个分片为剩余部分，范围(0, chunkLengthMs]
func SplitChunks(durationMs, chunkLengthMs int64) ([]Chunk, error) {
	if durationMs <= 0 {
		return nil, utils.NewError(utils.KindEmptyAudio, "音频时长为0，无法转写", nil)
	}

	// 分片长度必须为正，否则循环无法推进
	if chunkLengthMs <= 0 {
		return nil, utils.NewError(utils.KindInvalidAudioProperties,
			fmt.Sprintf("分片长度异常: %dms", chunkLengthMs), nil)
	}

	var chunks []Chunk
	for start := int64(0); start < durationMs; start += chunkLengthMs {
		length := chunkLengthMs
		if start+length > durationMs {
			length = durationMs - start
		}
		chunks = append(chunks, Chunk{
			Index:      len(chunks),
			StartMs:    start,
			DurationMs: length,
		})
	}

	return chunks, nil
}

// MergeTexts 按分片顺序以单个空格拼接各分片的转写文本
func MergeTexts(texts []string) string {
	return strings.Join(texts, " ")
}
