package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// AudioFile 表示一个待转写的音频文件
type AudioFile struct {
	Path    string    // 文件路径
	Name    string    // 文件名
	Ext     string    // 文件扩展名
	Size    int64     // 文件大小（字节）
	ModTime time.Time // 修改时间
}

// AudioScanner 用于扫描目录中的音频文件
type AudioScanner struct {
	Extensions []string
}

// NewAudioScanner 创建新的音频扫描器，扩展名对齐Whisper接口支持的格式
func NewAudioScanner() *AudioScanner {
	return &AudioScanner{
		Extensions: []string{".mp3", ".wav", ".flac", ".m4a", ".ogg", ".wma", ".aac"},
	}
}

// ScanDirectory 扫描指定目录中的音频文件（非递归），按文件名排序
func (s *AudioScanner) ScanDirectory(dir string) ([]AudioFile, error) {
	var audioFiles []AudioFile

	utils.Debug("开始扫描目录: %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		// 跳过目录和隐藏文件
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !s.isAudioExt(ext) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			utils.Warn("获取文件信息失败: %v", err)
			continue
		}

		audioFiles = append(audioFiles, AudioFile{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Ext:     ext,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(audioFiles, func(i, j int) bool {
		return audioFiles[i].Name < audioFiles[j].Name
	})

	utils.Info("扫描完成，共找到 %d 个音频文件", len(audioFiles))

	return audioFiles, nil
}

// FilterNewFiles 根据已处理记录过滤出新文件
func (s *AudioScanner) FilterNewFiles(files []AudioFile, processedPaths map[string]bool) []AudioFile {
	var newFiles []AudioFile

	for _, file := range files {
		if !processedPaths[file.Path] {
			newFiles = append(newFiles, file)
		}
	}

	return newFiles
}

func (s *AudioScanner) isAudioExt(ext string) bool {
	for _, audioExt := range s.Extensions {
		if ext == audioExt {
			return true
		}
	}
	return false
}
