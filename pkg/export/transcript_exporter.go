package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccp-p/audio-transcriber/pkg/models"
	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// TranscriptExporter 负责将转写结果保存为文本文件
type TranscriptExporter struct {
	OutputFolder string // 为空时保存在音频文件所在目录
}

// NewTranscriptExporter 创建一个新的转写结果导出器
func NewTranscriptExporter(outputFolder string) *TranscriptExporter {
	return &TranscriptExporter{
		OutputFolder: outputFolder,
	}
}

// TextPath 返回转写文本的保存路径
func (e *TranscriptExporter) TextPath(audioPath string) string {
	if e.OutputFolder == "" {
		return utils.DefaultTranscriptPath(audioPath)
	}

	ext := filepath.Ext(audioPath)
	stem := strings.TrimSuffix(filepath.Base(audioPath), ext)
	return filepath.Join(e.OutputFolder, stem+"_transcript.txt")
}

// ExportText 将转写文本写入文件，返回写入的路径
func (e *TranscriptExporter) ExportText(result *models.TranscriptResult) (string, error) {
	if err := utils.EnsureDirExists(e.OutputFolder); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}

	outputPath := e.TextPath(result.SourcePath)
	if err := os.WriteFile(outputPath, []byte(result.Text), 0644); err != nil {
		return "", fmt.Errorf("写入转写文本失败: %w", err)
	}

	utils.Info("转写文本已保存: %s", outputPath)
	return outputPath, nil
}

// ExportJSON 额外导出带分片信息的JSON结果文件，返回写入的路径
func (e *TranscriptExporter) ExportJSON(result *models.TranscriptResult) (string, error) {
	if err := utils.EnsureDirExists(e.OutputFolder); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}

	textPath := e.TextPath(result.SourcePath)
	jsonPath := strings.TrimSuffix(textPath, ".txt") + ".json"

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("序列化转写结果失败: %w", err)
	}

	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", fmt.Errorf("写入JSON文件失败: %w", err)
	}

	utils.Info("JSON结果已保存: %s", jsonPath)
	return jsonPath, nil
}
