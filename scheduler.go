// Scheduler implementations for rxlite
// 调度器实现：IO（缓存式无上限）、计算（固定核数）、单线程三种策略
package rxlite

import (
	"runtime"
	"sync"
	"time"
)

// ============================================================================
// IO调度器 - 无上限缓存式工作池
// ============================================================================

// ioIdleTTL 空闲worker的存活时间，超时后goroutine退出
const ioIdleTTL = 60 * time.Second

// ioWorker IO调度器的工作goroutine句柄
// tasks带1个缓冲：Execute把任务交给空闲worker时不会阻塞
type ioWorker struct {
	tasks chan func()
}

// ioScheduler 缓存式调度器，按提交的任务增长，复用空闲worker
// 适合延迟为主、可能阻塞的工作
type ioScheduler struct {
	mu       sync.Mutex
	idle     []*ioWorker
	shutdown bool
	quit     chan struct{}
	wg       sync.WaitGroup
}

// NewIOScheduler 创建IO调度器
func NewIOScheduler() Scheduler {
	return &ioScheduler{
		quit: make(chan struct{}),
	}
}

// Execute 提交任务：优先交给空闲worker，否则新建一个worker
func (s *ioScheduler) Execute(task func()) {
	if task == nil {
		panic("rxlite: task can't be nil")
	}

	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	if n := len(s.idle); n > 0 {
		w := s.idle[n-1]
		s.idle = s.idle[:n-1]
		s.mu.Unlock()
		w.tasks <- task
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	w := &ioWorker{tasks: make(chan func(), 1)}
	w.tasks <- task
	go s.run(w)
}

// run worker主循环：执行任务后回到空闲池，空闲超时后退出
func (s *ioScheduler) run(w *ioWorker) {
	defer s.wg.Done()

	timer := time.NewTimer(ioIdleTTL)
	defer timer.Stop()

	for {
		select {
		case task := <-w.tasks:
			task()

			s.mu.Lock()
			if s.shutdown {
				s.mu.Unlock()
				return
			}
			s.idle = append(s.idle, w)
			s.mu.Unlock()

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(ioIdleTTL)

		case <-timer.C:
			s.mu.Lock()
			for i, other := range s.idle {
				if other == w {
					s.idle = append(s.idle[:i], s.idle[i+1:]...)
					s.mu.Unlock()
					return
				}
			}
			s.mu.Unlock()
			// 不在空闲池里说明刚被Execute取走，回到循环接收在途任务

		case <-s.quit:
			return
		}
	}
}

// Shutdown 关闭调度器，幂等；已提交但未开始的任务不保证执行
func (s *ioScheduler) Shutdown() {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	s.shutdown = true
	s.idle = nil
	s.mu.Unlock()

	close(s.quit)
	s.wg.Wait()
}

// ============================================================================
// 固定工作池调度器 - 计算与单线程策略的共同底座
// ============================================================================

// poolScheduler 固定大小的工作池，FIFO无界队列
// Execute只入队不阻塞，与工作池大小无关
type poolScheduler struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []func()
	shutdown bool
	wg       sync.WaitGroup
}

// NewFixedPoolScheduler 创建固定大小的工作池调度器
// workers小于等于0时取可用处理器核数
func NewFixedPoolScheduler(workers int) Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	s := &poolScheduler{}
	s.cond = sync.NewCond(&s.mu)

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// NewComputationScheduler 创建计算调度器，工作池大小等于可用处理器核数
// 适合CPU密集型工作
func NewComputationScheduler() Scheduler {
	return NewFixedPoolScheduler(runtime.NumCPU())
}

// NewSingleThreadScheduler 创建单工作者调度器
// 严格按提交顺序串行执行，适合需要保持顺序的工作
func NewSingleThreadScheduler() Scheduler {
	return NewFixedPoolScheduler(1)
}

// Execute 任务入队后立即返回
func (s *poolScheduler) Execute(task func()) {
	if task == nil {
		panic("rxlite: task can't be nil")
	}

	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, task)
	s.mu.Unlock()

	s.cond.Signal()
}

// worker 工作goroutine：按FIFO顺序取任务执行
func (s *poolScheduler) worker() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.shutdown {
			s.cond.Wait()
		}
		if s.shutdown {
			s.mu.Unlock()
			return
		}
		task := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		task()
	}
}

// Shutdown 关闭工作池，幂等
// 丢弃排队中的任务，等待正在执行的任务结束
func (s *poolScheduler) Shutdown() {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	s.shutdown = true
	s.queue = nil
	s.mu.Unlock()

	s.cond.Broadcast()
	s.wg.Wait()
}
