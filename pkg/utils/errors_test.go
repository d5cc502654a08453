package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudioErrorMessage(t *testing.T) {
	err := NewError(KindUnsupportedFormat, "无法识别的格式", nil)
	assert.Contains(t, err.Error(), "unsupported_format")
	assert.Contains(t, err.Error(), "无法识别的格式")

	cause := errors.New("底层错误")
	wrapped := NewError(KindIO, "写入失败", cause)
	assert.Contains(t, wrapped.Error(), "底层错误")
}

func TestAudioErrorUnwrap(t *testing.T) {
	cause := errors.New("底层错误")
	err := NewError(KindTranscriptionService, "调用失败", cause)

	assert.ErrorIs(t, err, cause)
}

func TestIsKind(t *testing.T) {
	err := NewError(KindMissingDependency, "缺少FFmpeg", nil)

	assert.True(t, IsKind(err, KindMissingDependency))
	assert.False(t, IsKind(err, KindUnsupportedFormat))

	// 错误链中的AudioError也能被识别
	wrapped := fmt.Errorf("外层包装: %w", err)
	assert.True(t, IsKind(wrapped, KindMissingDependency))

	// 普通错误不属于任何类别
	assert.False(t, IsKind(errors.New("普通错误"), KindIO))
	assert.False(t, IsKind(nil, KindIO))
}

func TestKindOf(t *testing.T) {
	err := NewError(KindEmptyAudio, "音频为空", nil)
	assert.Equal(t, KindEmptyAudio, KindOf(err))

	assert.Equal(t, ErrorKind(""), KindOf(errors.New("普通错误")))
}
