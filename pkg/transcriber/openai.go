package transcriber

import (
	"context"
	"fmt"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// OpenAIService 基于OpenAI Whisper接口的转写服务实现
type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService 创建Whisper转写服务
// baseURL为空时使用官方地址，model为空时使用whisper-1
func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}

	return &OpenAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Transcribe 实现Service接口
// 认证、限流、输入非法等远程错误统一归类为transcription_service
func (s *OpenAIService) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", utils.NewError(utils.KindTranscriptionService,
			fmt.Sprintf("转写服务调用失败: %s", filepath.Base(audioPath)), err)
	}

	return resp.Text, nil
}
