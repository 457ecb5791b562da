// Test helpers for rxlite
// 测试辅助：记录式观察者，用于断言信号序列
package rxlite

import (
	"sync"
	"time"
)

// 轮询断言的默认参数
const (
	settleTimeout = 2 * time.Second
	settleTick    = 5 * time.Millisecond
)

// recordingObserver 记录收到的全部信号，跨goroutine安全
type recordingObserver struct {
	mu        sync.Mutex
	values    []interface{}
	errors    []error
	completes int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{}
}

func (r *recordingObserver) OnNext(value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

func (r *recordingObserver) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recordingObserver) OnComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes++
}

// Values 返回已收到值的快照
func (r *recordingObserver) Values() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]interface{}, len(r.values))
	copy(snapshot, r.values)
	return snapshot
}

// Errors 返回已收到错误的快照
func (r *recordingObserver) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]error, len(r.errors))
	copy(snapshot, r.errors)
	return snapshot
}

// Completes 返回收到完成信号的次数
func (r *recordingObserver) Completes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completes
}

// TerminalCount 返回收到终止信号的总次数（错误加完成）
func (r *recordingObserver) TerminalCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors) + r.completes
}
