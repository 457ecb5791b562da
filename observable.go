// Observable implementation for rxlite
// 冷Observable核心实现：订阅注册表、Subscription生命周期与线程重定向操作符
package rxlite

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ============================================================================
// Observable 核心实现
// ============================================================================

// Observable 冷的可观察序列
// 持有源函数；每次Subscribe都会独立地重新执行源函数
// 构建后不可变；subscriptions注册表仅用于记账和自省，不做级联取消
type Observable struct {
	source func(observer Observer)

	mu            sync.Mutex
	subscriptions map[uuid.UUID]*subscription
}

// Create 从源函数创建冷Observable
// source为nil属于程序错误，在调用边界直接panic，不走OnError
func Create(source func(observer Observer)) *Observable {
	if source == nil {
		panic("rxlite: source function can't be nil")
	}
	return &Observable{
		source:        source,
		subscriptions: make(map[uuid.UUID]*subscription),
	}
}

// CreateWithEmitter 从发射器函数创建冷Observable
// 与Create等价，保留该入口以对齐双构造入口的API面
func CreateWithEmitter(emitter func(observer Observer)) *Observable {
	if emitter == nil {
		panic("rxlite: emitter function can't be nil")
	}
	return Create(emitter)
}

// Subscribe 订阅观察者，返回可取消的订阅句柄
// 同步调用：source返回后Subscribe即返回；若source内部转移到调度器，
// 返回时信号可能尚未投递完毕
func (o *Observable) Subscribe(observer Observer) Disposable {
	if observer == nil {
		panic("rxlite: observer can't be nil")
	}

	sub := &subscription{
		id:       uuid.New(),
		observer: observer,
		owner:    o,
	}
	o.register(sub)
	o.source(sub)
	return sub
}

// SubscribeWithCallbacks 使用回调函数订阅，任意回调可以为nil
func (o *Observable) SubscribeWithCallbacks(onNext OnNext, onError OnError, onComplete OnComplete) Disposable {
	return o.Subscribe(NewObserver(onNext, onError, onComplete))
}

// SubscriptionCount 返回当前活跃订阅数，仅用于自省
func (o *Observable) SubscriptionCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subscriptions)
}

// register 把订阅加入注册表
// Subscribe与订阅的终止/取消可能发生在不同goroutine，注册表必须加锁
func (o *Observable) register(sub *subscription) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscriptions[sub.id] = sub
}

// deregister 把订阅移出注册表
func (o *Observable) deregister(id uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.subscriptions, id)
}

// ============================================================================
// Subscription 内部实现
// ============================================================================

// subscription 包装单个Observer，同时实现Observer和Disposable
// disposed标志由一个goroutine设置、可能被另一个goroutine读取，
// 终止信号通过CAS抢占，保证至多投递一次
type subscription struct {
	id       uuid.UUID
	observer Observer
	owner    *Observable
	disposed int32
}

// OnNext 未取消时转发值，否则静默丢弃
func (s *subscription) OnNext(value interface{}) {
	if atomic.LoadInt32(&s.disposed) == 0 {
		s.observer.OnNext(value)
	}
}

// OnError 抢占终止槽位后投递错误并注销；重复的终止信号是空操作
func (s *subscription) OnError(err error) {
	if atomic.CompareAndSwapInt32(&s.disposed, 0, 1) {
		s.observer.OnError(err)
		s.owner.deregister(s.id)
	}
}

// OnComplete 抢占终止槽位后投递完成并注销；重复的终止信号是空操作
func (s *subscription) OnComplete() {
	if atomic.CompareAndSwapInt32(&s.disposed, 0, 1) {
		s.observer.OnComplete()
		s.owner.deregister(s.id)
	}
}

// Dispose 取消订阅并注销，幂等
// 不通知观察者，也不中断上游正在进行的生产
func (s *subscription) Dispose() {
	if atomic.CompareAndSwapInt32(&s.disposed, 0, 1) {
		s.owner.deregister(s.id)
	}
}

// IsDisposed 检查是否已取消
func (s *subscription) IsDisposed() bool {
	return atomic.LoadInt32(&s.disposed) == 1
}

// ============================================================================
// 线程重定向操作符
// ============================================================================

// SubscribeOn 把源函数的执行转移到调度器的工作goroutine上
// 源内部的发射顺序不变，只是离开了调用Subscribe的goroutine
// 链路中只有最外层的SubscribeOn有可观察的效果
func (o *Observable) SubscribeOn(scheduler Scheduler) *Observable {
	if scheduler == nil {
		panic("rxlite: scheduler can't be nil")
	}
	return Create(func(observer Observer) {
		scheduler.Execute(func() {
			o.source(observer)
		})
	})
}

// ObserveOn 把每个信号的投递单独提交到调度器
// 多工作者的调度器不保证信号间的投递顺序；单线程调度器保持顺序
func (o *Observable) ObserveOn(scheduler Scheduler) *Observable {
	if scheduler == nil {
		panic("rxlite: scheduler can't be nil")
	}
	return Create(func(observer Observer) {
		o.Subscribe(NewObserver(
			func(value interface{}) {
				scheduler.Execute(func() { observer.OnNext(value) })
			},
			func(err error) {
				scheduler.Execute(func() { observer.OnError(err) })
			},
			func() {
				scheduler.Execute(func() { observer.OnComplete() })
			},
		))
	})
}
