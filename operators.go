// Transform operators for rxlite
// 变换操作符实现：Map, Filter, DoOnNext, DoOnError, DoOnComplete, Take
package rxlite

import (
	"sync/atomic"
)

// ============================================================================
// 回调安全执行
// ============================================================================

// applyTransform 执行转换函数，把panic降级为error
// 每个条目上的计算故障必须在计算点被捕获并恰好转换为一次OnError，
// 不允许作为panic逃出Subscribe调用
func applyTransform(transformer Transformer, value interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = recoveredError(r)
		}
	}()
	return transformer(value)
}

// evaluatePredicate 执行谓词函数，把panic降级为error
func evaluatePredicate(predicate Predicate, value interface{}) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = recoveredError(r)
		}
	}()
	return predicate(value), nil
}

// runConsumer 执行副作用回调，把panic降级为error
func runConsumer(action OnNext, value interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()
	action(value)
	return nil
}

// ============================================================================
// 变换操作符
// ============================================================================

// Map 对每个值应用转换函数
// 转换失败转换为一次OnError并停止转发；上游的终止信号原样转发
func (o *Observable) Map(transformer Transformer) *Observable {
	if transformer == nil {
		panic("rxlite: transformer function can't be nil")
	}
	return Create(func(observer Observer) {
		o.Subscribe(NewObserver(
			func(value interface{}) {
				mapped, err := applyTransform(transformer, value)
				if err != nil {
					observer.OnError(err)
					return
				}
				observer.OnNext(mapped)
			},
			observer.OnError,
			observer.OnComplete,
		))
	})
}

// Filter 只转发谓词为真的值
// 谓词故障转换为一次OnError；上游的终止信号原样转发
func (o *Observable) Filter(predicate Predicate) *Observable {
	if predicate == nil {
		panic("rxlite: predicate function can't be nil")
	}
	return Create(func(observer Observer) {
		o.Subscribe(NewObserver(
			func(value interface{}) {
				ok, err := evaluatePredicate(predicate, value)
				if err != nil {
					observer.OnError(err)
					return
				}
				if ok {
					observer.OnNext(value)
				}
			},
			observer.OnError,
			observer.OnComplete,
		))
	})
}

// DoOnNext 在转发每个值之前执行副作用回调
// 回调故障转换为一次OnError，该值不再转发
func (o *Observable) DoOnNext(action OnNext) *Observable {
	if action == nil {
		panic("rxlite: consumer function can't be nil")
	}
	return Create(func(observer Observer) {
		o.Subscribe(NewObserver(
			func(value interface{}) {
				if err := runConsumer(action, value); err != nil {
					observer.OnError(err)
					return
				}
				observer.OnNext(value)
			},
			observer.OnError,
			observer.OnComplete,
		))
	})
}

// DoOnError 在错误信号上执行副作用回调后原样转发
func (o *Observable) DoOnError(action OnError) *Observable {
	if action == nil {
		panic("rxlite: action function can't be nil")
	}
	return Create(func(observer Observer) {
		o.Subscribe(NewObserver(
			observer.OnNext,
			func(err error) {
				action(err)
				observer.OnError(err)
			},
			observer.OnComplete,
		))
	})
}

// DoOnComplete 在完成信号上执行副作用回调后原样转发
func (o *Observable) DoOnComplete(action OnComplete) *Observable {
	if action == nil {
		panic("rxlite: action function can't be nil")
	}
	return Create(func(observer Observer) {
		o.Subscribe(NewObserver(
			observer.OnNext,
			observer.OnError,
			func() {
				action()
				observer.OnComplete()
			},
		))
	})
}

// Take 只转发前count个值，之后向下游发出完成信号
// 下游订阅终止后，上游多余的发射被静默丢弃
func (o *Observable) Take(count int) *Observable {
	return Create(func(observer Observer) {
		if count <= 0 {
			observer.OnComplete()
			return
		}
		taken := int32(0)
		o.Subscribe(NewObserver(
			func(value interface{}) {
				n := atomic.AddInt32(&taken, 1)
				if n > int32(count) {
					return
				}
				observer.OnNext(value)
				if n == int32(count) {
					observer.OnComplete()
				}
			},
			observer.OnError,
			observer.OnComplete,
		))
	})
}
