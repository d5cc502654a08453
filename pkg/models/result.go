package models

import "time"

// TranscriptResult 表示一次转写的最终结果
type TranscriptResult struct {
	SourcePath  string    `json:"source_path"`           // 原始音频文件路径
	Text        string    `json:"text"`                  // 完整转写文本
	Chunked     bool      `json:"chunked"`               // 是否经过分片处理
	ChunkCount  int       `json:"chunk_count"`           // 分片数量，直接转写时为0
	ChunkTexts  []string  `json:"chunk_texts,omitempty"` // 各分片的转写文本，按分片顺序
	DurationMs  int64     `json:"duration_ms"`           // 音频时长（毫秒），直接转写时可能为0
	ProcessedAt time.Time `json:"processed_at"`          // 处理完成时间
}
