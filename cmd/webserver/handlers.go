package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccp-p/audio-transcriber/pkg/audio"
	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// 上传大小上限：Whisper接口按25MB限流，分片路径允许更大的输入
const maxUploadBytes = 512 * 1024 * 1024

// --- Helper Functions ---

// respondWithError 发送错误 JSON 响应
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, BaseResponse{Code: code, Msg: message})
}

// respondWithJSON 发送 JSON 响应
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		utils.Error("JSON 序列化错误: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code": 500, "msg": "内部服务器错误：无法序列化响应"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// --- API Handlers ---

// handleTranscribe 处理音频上传请求，保存文件并创建后台转写任务
func (s *server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "只允许 POST 方法")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondWithError(w, http.StatusBadRequest, "解析上传内容失败: "+err.Error())
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "缺少 'audio' 文件字段")
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	if !audio.SupportedFormat(fileName) {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("不支持的音频格式: %s", filepath.Ext(fileName)))
		return
	}

	uploadPath, err := s.saveUpload(file, fileName)
	if err != nil {
		utils.Error("保存上传文件失败: %v", err)
		respondWithError(w, http.StatusInternalServerError, "保存上传文件失败")
		return
	}

	task := s.store.Create(fileName, uploadPath)
	go s.store.run(s.transcriber, task.ID)

	resp := TranscribeResponse{
		BaseResponse: BaseResponse{Code: 0},
		Data: &struct {
			TaskID string `json:"task_id"`
		}{TaskID: task.ID},
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// saveUpload 将上传内容保存到临时目录，保留原始扩展名供解码器识别格式
func (s *server) saveUpload(file io.Reader, fileName string) (string, error) {
	if err := utils.EnsureDirExists(s.config.TempDir); err != nil {
		return "", err
	}

	ext := filepath.Ext(fileName)
	tmpFile, err := os.CreateTemp(s.config.TempDir, "upload_*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmpFile, file); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", err
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}

	return tmpFile.Name(), nil
}

// handleTaskStatus 处理获取任务状态请求
// 路径格式 /api/task_status/{task_id}
func (s *server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "只允许 GET 方法")
		return
	}

	taskID := strings.TrimPrefix(strings.Trim(r.URL.Path, "/"), "api/task_status/")
	if taskID == "" {
		respondWithError(w, http.StatusBadRequest, "缺少 task_id")
		return
	}

	task, found := s.store.Snapshot(taskID)
	if !found {
		respondWithError(w, http.StatusNotFound, "未找到指定的任务")
		return
	}

	resp := TaskStatusResponse{
		BaseResponse: BaseResponse{Code: 0},
		Data: &TaskStatusData{
			Status:     task.Status,
			FileName:   task.FileName,
			Messages:   task.Messages,
			Transcript: task.Transcript,
			Error:      task.Error,
			ErrorKind:  task.ErrorKind,
		},
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// handleDownload 下载转写文本，文件名为 <原文件名>_transcript.txt
func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "只允许 GET 方法")
		return
	}

	taskID := strings.TrimPrefix(strings.Trim(r.URL.Path, "/"), "api/download/")
	if taskID == "" {
		respondWithError(w, http.StatusBadRequest, "缺少 task_id")
		return
	}

	task, found := s.store.Snapshot(taskID)
	if !found {
		respondWithError(w, http.StatusNotFound, "未找到指定的任务")
		return
	}

	if task.Status != TaskSuccess {
		respondWithError(w, http.StatusConflict, "任务尚未完成，无法下载")
		return
	}

	downloadName := filepath.Base(utils.DefaultTranscriptPath(task.FileName))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	w.Write([]byte(task.Transcript))
}

// handleDeleteTask 处理删除任务请求
func (s *server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "只允许 POST 方法")
		return
	}

	taskID := strings.TrimPrefix(strings.Trim(r.URL.Path, "/"), "api/delete_task/")
	if taskID == "" {
		respondWithError(w, http.StatusBadRequest, "缺少 task_id")
		return
	}

	if s.store.Delete(taskID) {
		respondWithJSON(w, http.StatusOK, BaseResponse{Code: 0, Msg: "任务已删除"})
	} else {
		respondWithError(w, http.StatusNotFound, "未找到要删除的任务")
	}
}
