package transcriber

// Route 表示文件的转写路径决策
type Route int

const (
	// RouteDirect 文件大小在上限以内，整体直接转写
	RouteDirect Route = iota
	// RouteChunked 文件超过上限，需要分片转写
	RouteChunked
)

// String 返回决策的字符串表示
func (r Route) String() string {
	if r == RouteDirect {
		return "direct"
	}
	return "chunked"
}

// DecideRoute 根据文件大小和阈值判断转写路径
// 严格小于阈值时直接转写，等于或超过阈值时分片
func DecideRoute(sizeBytes, thresholdBytes int64) Route {
	if sizeBytes < thresholdBytes {
		return RouteDirect
	}
	return RouteChunked
}
