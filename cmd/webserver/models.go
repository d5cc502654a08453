package main

// --- 响应结构体 ---

type BaseResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"` // omitempty 表示如果为空则不包含在 JSON 中
}

type TranscribeResponse struct {
	BaseResponse
	Data *struct {
		TaskID string `json:"task_id"`
	} `json:"data,omitempty"`
}

type TaskStatusResponse struct {
	BaseResponse
	Data *TaskStatusData `json:"data,omitempty"`
}

type TaskStatusData struct {
	Status     string   `json:"status"` // PENDING, RUNNING, SUCCESS, FAILED
	FileName   string   `json:"file_name"`
	Messages   []string `json:"messages"`             // 进度消息，按时间顺序
	Transcript string   `json:"transcript,omitempty"` // 成功时的转写文本
	Error      string   `json:"error,omitempty"`      // 失败原因
	ErrorKind  string   `json:"error_kind,omitempty"` // 错误类别，前端据此提示
}
