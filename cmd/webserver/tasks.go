package main

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ccp-p/audio-transcriber/pkg/transcriber"
	"github.com/ccp-p/audio-transcriber/pkg/utils"
)

// 任务状态
const (
	TaskPending = "PENDING"
	TaskRunning = "RUNNING"
	TaskSuccess = "SUCCESS"
	TaskFailed  = "FAILED"
)

// Task 表示一次后台转写任务
type Task struct {
	ID         string
	FileName   string   // 用户上传时的原始文件名
	UploadPath string   // 服务端保存的临时文件路径
	Status     string
	Messages   []string // 进度消息
	Transcript string
	Error      string
	ErrorKind  string
	CreatedAt  time.Time
}

// TaskStore 并发安全的任务存储
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewTaskStore 创建任务存储
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
	}
}

// Create 创建一个新任务
func (s *TaskStore) Create(fileName, uploadPath string) *Task {
	task := &Task{
		ID:         uuid.New().String(),
		FileName:   fileName,
		UploadPath: uploadPath,
		Status:     TaskPending,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	utils.Info("创建转写任务: %s (%s)", task.ID, fileName)
	return task
}

// Snapshot 返回任务当前状态的副本
func (s *TaskStore) Snapshot(taskID string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return Task{}, false
	}

	snapshot := *task
	snapshot.Messages = append([]string(nil), task.Messages...)
	return snapshot, true
}

// Delete 删除任务
func (s *TaskStore) Delete(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return false
	}
	delete(s.tasks, taskID)
	utils.Info("删除任务: %s", taskID)
	return true
}

// appendMessage 追加一条进度消息
func (s *TaskStore) appendMessage(taskID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task, ok := s.tasks[taskID]; ok {
		task.Messages = append(task.Messages, message)
	}
}

// setStatus 更新任务状态
func (s *TaskStore) setStatus(taskID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task, ok := s.tasks[taskID]; ok {
		task.Status = status
	}
}

// run 在后台执行转写任务，结束后清理上传的临时文件
func (s *TaskStore) run(tr *transcriber.Transcriber, taskID string) {
	snapshot, ok := s.Snapshot(taskID)
	if !ok {
		return
	}

	s.setStatus(taskID, TaskRunning)
	utils.Info("任务 %s 开始转写: %s", taskID, snapshot.FileName)

	defer func() {
		if err := os.Remove(snapshot.UploadPath); err != nil && !os.IsNotExist(err) {
			utils.Warn("清理上传文件失败: %v", err)
		}
	}()

	result, err := tr.Transcribe(context.Background(), snapshot.UploadPath, func(message string) {
		s.appendMessage(taskID, message)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		// 任务可能在处理期间被删除
		return
	}

	if err != nil {
		task.Status = TaskFailed
		task.Error = err.Error()
		task.ErrorKind = string(utils.KindOf(err))
		utils.Error("任务 %s 转写失败: %v", taskID, err)
		return
	}

	task.Status = TaskSuccess
	task.Transcript = result.Text
	utils.Info("任务 %s 转写完成 (%d 字符)", taskID, len(result.Text))
}
