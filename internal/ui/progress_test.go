package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBarString(t *testing.T) {
	bar := NewProgressBar(10, "转写进度", "准备中")
	bar.Current = 5

	s := bar.String()
	assert.True(t, strings.HasPrefix(s, "转写进度"))
	assert.Contains(t, s, " 50% ")
	assert.Contains(t, s, "5/10")
}

func TestProgressBarUpdateClamp(t *testing.T) {
	bar := NewProgressBar(3, "test", "")

	// 超过总数时收敛到总数
	bar.Update(5, "")
	assert.Equal(t, 3, bar.Current)

	// 负数忽略
	bar.Update(-1, "")
	assert.Equal(t, 3, bar.Current)
}

func TestProgressBarZeroTotal(t *testing.T) {
	// 总数为0时按已完成渲染，不产生NaN
	bar := NewProgressBar(0, "test", "")

	s := bar.String()
	assert.NotContains(t, s, "NaN")
	assert.Contains(t, s, "100%")
}

func TestProgressManagerDisabled(t *testing.T) {
	pm := NewProgressManager(false)

	// 禁用时不创建进度条，相关调用为空操作
	assert.Nil(t, pm.CreateProgressBar("id", 10, "p", "s"))
	pm.UpdateProgressBar("id", 1, "")
	pm.CompleteProgressBar("id", "")
}
