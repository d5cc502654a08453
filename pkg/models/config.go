package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config 表示应用程序的配置
type Config struct {
	MediaFolder   string `json:"media_folder"`     // 媒体文件所在文件夹
	OutputFolder  string `json:"output_folder"`    // 输出结果文件夹，为空时保存在音频文件旁边
	TempDir       string `json:"temp_dir"`         // 临时目录，分片文件在此目录下生成
	APIKey        string `json:"api_key"`          // 转写服务API密钥
	APIBaseURL    string `json:"api_base_url"`     // 转写服务地址，为空时使用官方地址
	Model         string `json:"model"`            // 转写模型名称
	MaxFileSizeMB int    `json:"max_file_size_mb"` // 直接转写的文件大小上限（MB），超过则分片
	ChunkSizeMB   int    `json:"chunk_size_mb"`    // 单个分片的目标大小（MB）
	AutoSave      bool   `json:"auto_save"`        // 是否自动保存转写文本
	ExportJSON    bool   `json:"export_json"`      // 是否额外导出JSON格式结果
	WatchMode     bool   `json:"watch_mode"`       // 是否启用监听模式
	LogLevel      string `json:"log_level"`        // 日志级别
	LogFile       string `json:"log_file"`         // 日志文件
}

// ConfigValidationError 表示配置验证错误
type ConfigValidationError struct {
	Field   string
	Message string
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("配置验证错误: %s - %s", e.Field, e.Message)
}

// NewDefaultConfig 创建默认配置
func NewDefaultConfig() *Config {
	return &Config{
		MediaFolder:   "./media",
		OutputFolder:  "",
		TempDir:       "./temp",
		Model:         "whisper-1",
		MaxFileSizeMB: 25,
		ChunkSizeMB:   20,
		AutoSave:      true,
		ExportJSON:    false,
		WatchMode:     false,
		LogLevel:      "INFO",
		LogFile:       "",
	}
}

// MaxFileSizeBytes 直接转写的文件大小上限（字节）
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// ChunkSizeBytes 单个分片的目标大小（字节）
func (c *Config) ChunkSizeBytes() int64 {
	return int64(c.ChunkSizeMB) * 1024 * 1024
}

// Validate 验证配置是否有效
func (c *Config) Validate() error {
	// 验证数值范围
	if c.MaxFileSizeMB < 1 || c.MaxFileSizeMB > 25 {
		return &ConfigValidationError{"MaxFileSizeMB", "必须在1-25之间"}
	}

	if c.ChunkSizeMB < 1 || c.ChunkSizeMB > c.MaxFileSizeMB {
		return &ConfigValidationError{"ChunkSizeMB", "必须在1和MaxFileSizeMB之间"}
	}

	if c.Model == "" {
		return &ConfigValidationError{"Model", "模型名称不能为空"}
	}

	return nil
}

// LoadFromFile 从文件加载配置
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}

	return c.Validate()
}

// SaveToFile 保存配置到文件
func (c *Config) SaveToFile(path string) error {
	// 确保目录存在
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Update 批量更新配置，验证失败时回滚
func (c *Config) Update(updates map[string]interface{}) error {
	tempConfig := *c

	// 将更新序列化为JSON再反序列化到结构体中
	updateBytes, err := json.Marshal(updates)
	if err != nil {
		return fmt.Errorf("序列化更新数据失败: %w", err)
	}

	if err := json.Unmarshal(updateBytes, c); err != nil {
		*c = tempConfig
		return fmt.Errorf("应用配置更新失败: %w", err)
	}

	if err := c.Validate(); err != nil {
		*c = tempConfig
		return err
	}

	return nil
}

// Reset 重置为默认配置
func (c *Config) Reset() {
	*c = *NewDefaultConfig()
}
