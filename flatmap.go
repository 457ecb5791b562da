// FlatMap operator for rxlite
// 平铺映射操作符：对每个外层值产生内层Observable并立即独立订阅
package rxlite

// applyMapper 执行平铺映射函数，把panic降级为error
func applyMapper(mapper func(interface{}) *Observable, value interface{}) (inner *Observable, err error) {
	defer func() {
		if r := recover(); r != nil {
			inner = nil
			err = recoveredError(r)
		}
	}()
	return mapper(value), nil
}

// FlatMap 把每个外层值映射为内层Observable，并把内层的值合并到下游
//
// 语义（刻意保留的原始契约，见DESIGN.md）：
//   - 映射失败转换为一次下游OnError
//   - 映射结果为nil时跳过该值
//   - 内层OnNext/OnError原样转发下游；并发活跃的内层订阅数量不设上限，
//     来自不同内层源的值之间没有顺序保证
//   - 内层OnComplete被吞掉：完成只由外层流驱动
//   - 外层OnComplete立即转发下游，不等待仍在运行的内层订阅
func (o *Observable) FlatMap(mapper func(interface{}) *Observable) *Observable {
	if mapper == nil {
		panic("rxlite: mapper function can't be nil")
	}
	return Create(func(observer Observer) {
		o.Subscribe(NewObserver(
			func(value interface{}) {
				inner, err := applyMapper(mapper, value)
				if err != nil {
					observer.OnError(err)
					return
				}
				if inner == nil {
					return
				}
				inner.Subscribe(NewObserver(
					observer.OnNext,
					observer.OnError,
					func() {
						// 内层完成不转发，完成由外层流决定
					},
				))
			},
			observer.OnError,
			observer.OnComplete,
		))
	})
}
