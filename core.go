// Package rxlite provides minimal cold reactive streams for Go
// 轻量级冷流响应式编程库，专注于信号契约、订阅生命周期与调度
package rxlite

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ============================================================================
// 信号契约
// ============================================================================

// Observer 观察者接口，接收流中的信号
// 对同一个订阅，信号序列满足 OnNext* (OnError | OnComplete)?
type Observer interface {
	// OnNext 接收下一个值
	OnNext(value interface{})
	// OnError 接收错误信号（终止信号）
	OnError(err error)
	// OnComplete 接收完成信号（终止信号）
	OnComplete()
}

// OnNext 处理下一个值的函数
type OnNext func(value interface{})

// OnError 处理错误的函数
type OnError func(err error)

// OnComplete 处理完成的函数
type OnComplete func()

// Predicate 谓词函数，用于过滤
type Predicate func(value interface{}) bool

// Transformer 转换函数，用于映射
type Transformer func(value interface{}) (interface{}, error)

// callbackObserver 基于回调函数的Observer实现
// 未提供的回调按空操作处理：忽略OnError的消费者只会看到流被静默截断
type callbackObserver struct {
	onNext     OnNext
	onError    OnError
	onComplete OnComplete
}

// NewObserver 从回调函数创建Observer，任意回调可以为nil
func NewObserver(onNext OnNext, onError OnError, onComplete OnComplete) Observer {
	return &callbackObserver{
		onNext:     onNext,
		onError:    onError,
		onComplete: onComplete,
	}
}

// OnNext 转发给onNext回调
func (c *callbackObserver) OnNext(value interface{}) {
	if c.onNext != nil {
		c.onNext(value)
	}
}

// OnError 转发给onError回调
func (c *callbackObserver) OnError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}

// OnComplete 转发给onComplete回调
func (c *callbackObserver) OnComplete() {
	if c.onComplete != nil {
		c.onComplete()
	}
}

// ============================================================================
// 生命周期管理
// ============================================================================

// Disposable 可取消的订阅句柄
type Disposable interface {
	// Dispose 取消订阅，幂等
	Dispose()
	// IsDisposed 检查是否已取消
	IsDisposed() bool
}

// baseDisposable 基础可释放资源实现，动作最多执行一次
type baseDisposable struct {
	disposed int32
	action   func()
}

// NewDisposable 创建在释放时执行action的Disposable
func NewDisposable(action func()) Disposable {
	return &baseDisposable{action: action}
}

// Dispose 释放资源
func (d *baseDisposable) Dispose() {
	if atomic.CompareAndSwapInt32(&d.disposed, 0, 1) {
		if d.action != nil {
			d.action()
		}
	}
}

// IsDisposed 检查是否已释放
func (d *baseDisposable) IsDisposed() bool {
	return atomic.LoadInt32(&d.disposed) == 1
}

// CompositeDisposable 组合式订阅管理器，统一释放一组Disposable
type CompositeDisposable struct {
	mu        sync.Mutex
	disposed  bool
	resources []Disposable
}

// NewCompositeDisposable 创建组合式订阅管理器
func NewCompositeDisposable() *CompositeDisposable {
	return &CompositeDisposable{
		resources: make([]Disposable, 0),
	}
}

// Add 添加可释放资源；管理器已释放时立即释放该资源
func (cd *CompositeDisposable) Add(disposable Disposable) {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	if cd.disposed {
		disposable.Dispose()
		return
	}

	cd.resources = append(cd.resources, disposable)
}

// Dispose 释放所有资源，幂等
func (cd *CompositeDisposable) Dispose() {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	if cd.disposed {
		return
	}

	cd.disposed = true
	for _, resource := range cd.resources {
		resource.Dispose()
	}
	cd.resources = nil
}

// IsDisposed 检查是否已释放
func (cd *CompositeDisposable) IsDisposed() bool {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.disposed
}

// ============================================================================
// 调度器接口
// ============================================================================

// Scheduler 调度器接口，把任务提交到自有的工作池异步执行
type Scheduler interface {
	// Execute 提交任务后立即返回，不阻塞调用方
	// 除单线程调度器外，不保证任务之间的执行顺序
	Execute(task func())
	// Shutdown 关闭调度器并释放工作池，幂等
	// 已提交但尚未开始的任务不保证会被执行
	Shutdown()
}

// ============================================================================
// 错误转换
// ============================================================================

// recoveredError 把recover到的panic值转换为error
// 用户回调中的panic不允许逃出Subscribe调用，统一降级为OnError信号
func recoveredError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("rxlite: callback panic: %v", r)
}
