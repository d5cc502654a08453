package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ccp-p/audio-transcriber/internal/ui"
	"github.com/ccp-p/audio-transcriber/internal/watcher"
	"github.com/ccp-p/audio-transcriber/pkg/audio"
	"github.com/ccp-p/audio-transcriber/pkg/export"
	"github.com/ccp-p/audio-transcriber/pkg/models"
	"github.com/ccp-p/audio-transcriber/pkg/scanner"
	"github.com/ccp-p/audio-transcriber/pkg/transcriber"
	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

var (
	mediaDir   = flag.String("media", "", "媒体文件目录，覆盖配置文件中的设置")
	outputDir  = flag.String("output", "", "输出目录，为空时保存在音频文件旁边")
	tempDir    = flag.String("temp", "", "临时文件目录")
	configFile = flag.String("config", "", "配置文件路径")
	apiKey     = flag.String("key", "", "转写服务API密钥，优先于OPENAI_API_KEY环境变量")
	watchFlag  = flag.Bool("watch", false, "监听模式，持续转写新增的音频文件")
	logLevel   = flag.String("log-level", "INFO", "日志级别 (VERBOSE, INFO, WARN)")
	logFile    = flag.String("log-file", "", "日志文件路径")
)

func main() {
	flag.Parse()

	if err := utils.InitLogger(*logLevel, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	printWelcome()

	config := loadConfig()

	if !checkDependencies() {
		logrus.Fatal("缺少必要的依赖项，无法继续")
	}

	if config.APIKey == "" {
		logrus.Fatal("未提供API密钥，请使用 -key 参数或设置 OPENAI_API_KEY 环境变量")
	}

	service := transcriber.NewOpenAIService(config.APIKey, config.APIBaseURL, config.Model)
	tr := transcriber.New(config, service, audio.NewFFmpegDecoder())
	exporter := export.NewTranscriptExporter(config.OutputFolder)

	if config.WatchMode {
		runWatchMode(tr, exporter, config)
		return
	}

	processFolder(tr, exporter, config)
}

// processFolder 扫描媒体目录并逐个转写
func processFolder(tr *transcriber.Transcriber, exporter *export.TranscriptExporter, config *models.Config) {
	audioScanner := scanner.NewAudioScanner()
	files, err := audioScanner.ScanDirectory(config.MediaFolder)
	if err != nil {
		logrus.Fatalf("扫描媒体目录失败: %v", err)
	}

	if len(files) == 0 {
		logrus.Info("没有找到音频文件，程序退出")
		return
	}

	fmt.Println("\n找到以下音频文件:")
	fmt.Println("--------------------")
	for i, file := range files {
		fmt.Printf("%d. %s (%s)\n", i+1, file.Name, utils.FormatFileSize(file.Size))
	}
	fmt.Println("--------------------")

	progressManager := ui.NewProgressManager(true)
	progressManager.CreateProgressBar("files", len(files), "转写进度", "准备中")

	succeeded := 0
	for i, file := range files {
		fmt.Printf("\n[%d/%d] 处理文件: %s\n", i+1, len(files), file.Name)

		if err := processFile(tr, exporter, config, file.Path); err != nil {
			logrus.Errorf("处理失败: %v", err)
		} else {
			succeeded++
		}

		progressManager.UpdateProgressBar("files", i+1, file.Name)
	}

	progressManager.CompleteProgressBar("files", fmt.Sprintf("完成 - %d/%d 成功", succeeded, len(files)))
	fmt.Println("\n所有文件处理完成!")
}

// runWatchMode 监听模式：持续监控媒体目录，新文件落盘后自动转写
func runWatchMode(tr *transcriber.Transcriber, exporter *export.TranscriptExporter, config *models.Config) {
	extensions := scanner.NewAudioScanner().Extensions

	monitor, err := watcher.NewFolderMonitor(config.MediaFolder, extensions, func(filePath string) {
		if err := processFile(tr, exporter, config, filePath); err != nil {
			logrus.Errorf("处理失败 %s: %v", filePath, err)
		}
	}, 5*time.Second)
	if err != nil {
		logrus.Fatalf("创建文件夹监控器失败: %v", err)
	}

	if err := monitor.Start(); err != nil {
		logrus.Fatalf("启动监听模式失败: %v", err)
	}
	defer monitor.Stop()

	color.Cyan("监听模式已启动，将音频文件放入 %s 即可自动转写 (Ctrl+C 退出)", config.MediaFolder)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\n收到退出信号，停止监听")
}

// processFile 转写单个文件并按配置保存结果
func processFile(tr *transcriber.Transcriber, exporter *export.TranscriptExporter, config *models.Config, filePath string) error {
	startTime := time.Now()

	result, err := tr.Transcribe(context.Background(), filePath, func(message string) {
		utils.Info("%s", message)
	})
	if err != nil {
		// 缺少解码依赖时给出安装提示，与文件本身的问题区分开
		if utils.IsKind(err, utils.KindMissingDependency) {
			color.Red(utils.FFmpegInstallHint())
		}
		return err
	}

	color.Green("\n%s", result.Text)

	if config.AutoSave {
		if _, err := exporter.ExportText(result); err != nil {
			logrus.Warnf("保存转写文本失败: %v", err)
		}
		if config.ExportJSON {
			if _, err := exporter.ExportJSON(result); err != nil {
				logrus.Warnf("保存JSON结果失败: %v", err)
			}
		}
	}

	duration := time.Since(startTime)
	fmt.Printf("处理用时: %s\n", utils.FormatTimeDuration(duration.Seconds()))

	return nil
}

func printWelcome() {
	fmt.Println()
	color.Cyan("================================")
	color.Cyan("   音频转写工具 - Whisper API   ")
	color.Cyan("================================")
	fmt.Println()
}

func checkDependencies() bool {
	fmt.Print("检查系统依赖... ")

	// 分片导出需要ffmpeg，元数据探测需要ffprobe
	if !utils.CheckFFmpeg() || !utils.CheckFFprobe() {
		color.Red("失败")
		logrus.Error(utils.FFmpegInstallHint())
		return false
	}

	color.Green("通过")
	return true
}

func loadConfig() *models.Config {
	fmt.Print("加载配置... ")

	// .env中的密钥在此处读取一次，之后显式传入转写器
	_ = godotenv.Load()

	config := models.NewDefaultConfig()

	if *configFile != "" {
		if err := config.LoadFromFile(*configFile); err != nil {
			color.Yellow("警告: 加载配置文件失败: %v", err)
			logrus.Warnf("配置加载失败: %v，将使用默认配置", err)
		} else {
			color.Green("成功")
		}
	} else {
		color.Yellow("未指定配置文件，使用默认配置")
	}

	// 命令行参数覆盖配置文件
	if *mediaDir != "" {
		config.MediaFolder = *mediaDir
	}
	if *outputDir != "" {
		config.OutputFolder = *outputDir
	}
	if *tempDir != "" {
		config.TempDir = *tempDir
	}
	if *watchFlag {
		config.WatchMode = true
	}

	if *apiKey != "" {
		config.APIKey = *apiKey
	} else if config.APIKey == "" {
		config.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	os.MkdirAll(config.MediaFolder, 0755)
	if config.OutputFolder != "" {
		os.MkdirAll(config.OutputFolder, 0755)
	}

	return config
}
