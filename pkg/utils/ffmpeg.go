package utils

import "os/exec"

// CheckFFmpeg 检查FFmpeg是否可用
func CheckFFmpeg() bool {
	cmd := exec.Command("ffmpeg", "-version")
	err := cmd.Run()
	return err == nil
}

// CheckFFprobe 检查FFprobe是否可用
func CheckFFprobe() bool {
	cmd := exec.Command("ffprobe", "-version")
	err := cmd.Run()
	return err == nil
}

// FFmpegInstallHint 返回FFmpeg安装提示，用于缺少依赖时的用户提示
func FFmpegInstallHint() string {
	return "未检测到FFmpeg，请先安装:\n" +
		"  方式一 (conda): conda install -c conda-forge ffmpeg\n" +
		"  方式二 (手动): https://ffmpeg.org/download.html"
}
