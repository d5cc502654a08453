package transcriber

import "context"

// ProgressCallback 是进度回调函数，用于通知转写过程的进度
// 仅用于界面展示，不参与控制流
type ProgressCallback func(message string)

// Service 定义了远程转写服务的接口
type Service interface {
	// Transcribe 对单个音频文件执行一次阻塞的转写调用，返回纯文本结果
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
