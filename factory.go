// Factory functions for rxlite
// 工厂函数：从现成的值构造冷Observable
// 所有工厂都是同步生产者，发射发生在Subscribe调用内部，
// 除非链路上通过SubscribeOn转移到调度器
package rxlite

// Just 从给定的值创建Observable，发射完所有值后完成
func Just(values ...interface{}) *Observable {
	return Create(func(observer Observer) {
		for _, value := range values {
			observer.OnNext(value)
		}
		observer.OnComplete()
	})
}

// FromSlice 从切片创建Observable
// 冷语义：每个订阅者都会重新遍历切片
func FromSlice(values []interface{}) *Observable {
	return Create(func(observer Observer) {
		for _, value := range values {
			observer.OnNext(value)
		}
		observer.OnComplete()
	})
}

// Range 发射从start开始的count个连续整数后完成
func Range(start, count int) *Observable {
	return Create(func(observer Observer) {
		for i := 0; i < count; i++ {
			observer.OnNext(start + i)
		}
		observer.OnComplete()
	})
}

// Empty 创建不发射任何值、立即完成的Observable
func Empty() *Observable {
	return Create(func(observer Observer) {
		observer.OnComplete()
	})
}

// Error 创建立即发出错误信号的Observable
func Error(err error) *Observable {
	if err == nil {
		panic("rxlite: error can't be nil")
	}
	return Create(func(observer Observer) {
		observer.OnError(err)
	})
}

// Never 创建永不发射任何信号的Observable
func Never() *Observable {
	return Create(func(observer Observer) {})
}
