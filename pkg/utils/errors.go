package utils

import (
	"errors"
	"fmt"
)

// ErrorKind 错误类别，调用方根据类别决定如何向用户展示
type ErrorKind string

const (
	// KindMissingDependency 解码引擎（FFmpeg）未安装
	KindMissingDependency ErrorKind = "missing_dependency"
	// KindUnsupportedFormat 文件扩展名或编码无法识别
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	// KindInvalidAudioProperties 音频元数据异常（比特率为0等），无法计算分片长度
	KindInvalidAudioProperties ErrorKind = "invalid_audio_properties"
	// KindEmptyAudio 输入音频时长为0
	KindEmptyAudio ErrorKind = "empty_audio"
	// KindTranscriptionService 远程转写服务调用失败（认证、限流、输入非法等统一归类）
	KindTranscriptionService ErrorKind = "transcription_service"
	// KindIO 临时文件读写或删除失败
	KindIO ErrorKind = "io"
)

// AudioError 是音频工具错误的基础类型
type AudioError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error 实现error接口
func (e *AudioError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap 支持error chain
func (e *AudioError) Unwrap() error {
	return e.Cause
}

// NewError 创建一个新的AudioError
func NewError(kind ErrorKind, message string, cause error) error {
	return &AudioError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// IsKind 判断错误链中是否包含指定类别的AudioError
func IsKind(err error, kind ErrorKind) bool {
	var audioErr *AudioError
	if errors.As(err, &audioErr) {
		return audioErr.Kind == kind
	}
	return false
}

// KindOf 返回错误的类别，非AudioError返回空字符串
func KindOf(err error) ErrorKind {
	var audioErr *AudioError
	if errors.As(err, &audioErr) {
		return audioErr.Kind
	}
	return ""
}
