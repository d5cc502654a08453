package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ccp-p/audio-transcriber/pkg/audio"
	"github.com/ccp-p/audio-transcriber/pkg/models"
	"github.com/ccp-p/audio-transcriber/pkg/transcriber"
	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

var (
	addr       = flag.String("addr", ":8080", "监听地址")
	configFile = flag.String("config", "", "配置文件路径")
	apiKey     = flag.String("key", "", "转写服务API密钥，优先于OPENAI_API_KEY环境变量")
	logLevel   = flag.String("log-level", "INFO", "日志级别 (VERBOSE, INFO, WARN)")
	logFile    = flag.String("log-file", "", "日志文件路径")
)

// server 持有处理请求所需的全部依赖
type server struct {
	config      *models.Config
	transcriber *transcriber.Transcriber
	store       *TaskStore
}

func main() {
	flag.Parse()

	if err := utils.InitLogger(*logLevel, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	_ = godotenv.Load()

	config := models.NewDefaultConfig()
	if *configFile != "" {
		if err := config.LoadFromFile(*configFile); err != nil {
			logrus.Warnf("配置加载失败: %v，将使用默认配置", err)
		}
	}

	if *apiKey != "" {
		config.APIKey = *apiKey
	} else if config.APIKey == "" {
		config.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if config.APIKey == "" {
		logrus.Fatal("未提供API密钥，请使用 -key 参数或设置 OPENAI_API_KEY 环境变量")
	}

	// ffmpeg缺失时仍可启动，小文件走直接转写路径
	if !utils.CheckFFmpeg() || !utils.CheckFFprobe() {
		logrus.Warn("未检测到FFmpeg，超过大小上限的文件将无法分片转写")
	}

	service := transcriber.NewOpenAIService(config.APIKey, config.APIBaseURL, config.Model)
	srv := &server{
		config:      config,
		transcriber: transcriber.New(config, service, audio.NewFFmpegDecoder()),
		store:       NewTaskStore(),
	}

	http.HandleFunc("/api/", srv.apiHandler)
	http.HandleFunc("/", handleIndex)

	logrus.Infof("服务器启动，监听 %s", *addr)
	logrus.Infof("请在浏览器中打开 http://localhost%s", *addr)

	if err := http.ListenAndServe(*addr, nil); err != nil {
		logrus.Fatalf("服务器启动失败: %v", err)
	}
}

// apiHandler 根据路径分发到不同的处理器
func (s *server) apiHandler(w http.ResponseWriter, r *http.Request) {
	utils.Debug("接收到 API 请求: %s %s", r.Method, r.URL.Path)

	trimmedPath := strings.TrimPrefix(r.URL.Path, "/api/")

	switch {
	case trimmedPath == "transcribe":
		s.handleTranscribe(w, r)
	case strings.HasPrefix(trimmedPath, "task_status/"):
		s.handleTaskStatus(w, r)
	case strings.HasPrefix(trimmedPath, "download/"):
		s.handleDownload(w, r)
	case strings.HasPrefix(trimmedPath, "delete_task/"):
		s.handleDeleteTask(w, r)
	default:
		http.NotFound(w, r)
		utils.Debug("未找到 API 处理器: %s", r.URL.Path)
	}
}

// handleIndex 提供上传页面
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="zh">
<head>
<meta charset="utf-8">
<title>音频转写工具</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 40px auto; padding: 0 16px; }
#messages { background: #f5f5f5; padding: 8px 12px; min-height: 2em; white-space: pre-wrap; }
#transcript { width: 100%; min-height: 200px; margin-top: 12px; }
button { margin-right: 8px; }
</style>
</head>
<body>
<h1>音频转写工具</h1>
<p>支持 mp3 / wav / flac / m4a / ogg / wma / aac，超过25MB的文件自动分片转写。</p>
<form id="upload-form">
  <input type="file" id="audio" name="audio" accept=".mp3,.wav,.flac,.m4a,.ogg,.wma,.aac" required>
  <button type="submit">开始转写</button>
</form>
<h3>进度</h3>
<div id="messages">等待上传...</div>
<h3>转写结果</h3>
<textarea id="transcript" readonly></textarea>
<div>
  <button id="download" disabled>下载转写文本</button>
</div>
<script>
let taskID = null;
let pollTimer = null;

document.getElementById('upload-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const data = new FormData();
  data.append('audio', document.getElementById('audio').files[0]);

  document.getElementById('messages').textContent = '上传中...';
  document.getElementById('transcript').value = '';
  document.getElementById('download').disabled = true;

  const resp = await fetch('/api/transcribe', { method: 'POST', body: data });
  const body = await resp.json();
  if (body.code !== 0) {
    document.getElementById('messages').textContent = '上传失败: ' + body.msg;
    return;
  }
  taskID = body.data.task_id;
  pollTimer = setInterval(poll, 1000);
});

async function poll() {
  const resp = await fetch('/api/task_status/' + taskID);
  const body = await resp.json();
  if (body.code !== 0) { return; }
  const task = body.data;

  document.getElementById('messages').textContent = task.messages ? task.messages.join('\n') : '';

  if (task.status === 'SUCCESS') {
    clearInterval(pollTimer);
    document.getElementById('transcript').value = task.transcript;
    document.getElementById('download').disabled = false;
  } else if (task.status === 'FAILED') {
    clearInterval(pollTimer);
    document.getElementById('messages').textContent += '\n转写失败: ' + task.error;
  }
}

document.getElementById('download').addEventListener('click', () => {
  window.location.href = '/api/download/' + taskID;
});
</script>
</body>
</html>
`
