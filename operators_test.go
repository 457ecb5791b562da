// Transform operator tests for rxlite
// 变换操作符测试：Map, Filter, DoOnNext及其故障降级语义
package rxlite

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Map
// ============================================================================

// TestMapTransformsValues 字符串解析为整数，全部成功后正常完成
func TestMapTransformsValues(t *testing.T) {
	recorder := newRecordingObserver()

	Just("1", "2").
		Map(func(value interface{}) (interface{}, error) {
			n, err := strconv.Atoi(value.(string))
			return n, err
		}).
		Subscribe(recorder)

	assert.Equal(t, []interface{}{1, 2}, recorder.Values())
	assert.Equal(t, 1, recorder.Completes())
	assert.Empty(t, recorder.Errors())
}

// TestMapFailureBecomesSingleOnError 解析失败转换为一次OnError，
// 之前已投递的值保持不变，完成信号不再出现
func TestMapFailureBecomesSingleOnError(t *testing.T) {
	recorder := newRecordingObserver()

	Just("1", "abc").
		Map(func(value interface{}) (interface{}, error) {
			n, err := strconv.Atoi(value.(string))
			return n, err
		}).
		Subscribe(recorder)

	assert.Equal(t, []interface{}{1}, recorder.Values())
	require.Len(t, recorder.Errors(), 1)
	assert.IsType(t, &strconv.NumError{}, recorder.Errors()[0])
	assert.Zero(t, recorder.Completes())
}

// TestMapPanicBecomesOnError 转换函数panic不允许逃出Subscribe，
// 降级为OnError信号
func TestMapPanicBecomesOnError(t *testing.T) {
	recorder := newRecordingObserver()

	assert.NotPanics(t, func() {
		Just(1, 2).
			Map(func(value interface{}) (interface{}, error) {
				if value.(int) == 2 {
					panic("mapper blew up")
				}
				return value, nil
			}).
			Subscribe(recorder)
	})

	assert.Equal(t, []interface{}{1}, recorder.Values())
	require.Len(t, recorder.Errors(), 1)
	assert.Contains(t, recorder.Errors()[0].Error(), "mapper blew up")
	assert.Zero(t, recorder.Completes())
}

// ============================================================================
// Filter
// ============================================================================

// TestFilterKeepsMatchingValues 只有谓词为真的值被转发
func TestFilterKeepsMatchingValues(t *testing.T) {
	recorder := newRecordingObserver()

	Just(1, 2, 3).
		Filter(func(value interface{}) bool {
			return value.(int)%2 == 0
		}).
		Subscribe(recorder)

	assert.Equal(t, []interface{}{2}, recorder.Values())
	assert.Equal(t, 1, recorder.Completes())
	assert.Empty(t, recorder.Errors())
}

// TestFilterPanicBecomesOnError 谓词故障降级为OnError
func TestFilterPanicBecomesOnError(t *testing.T) {
	recorder := newRecordingObserver()

	Just(1, 2, 3).
		Filter(func(value interface{}) bool {
			if value.(int) == 2 {
				panic(errors.New("bad predicate"))
			}
			return true
		}).
		Subscribe(recorder)

	assert.Equal(t, []interface{}{1}, recorder.Values())
	require.Len(t, recorder.Errors(), 1)
	assert.EqualError(t, recorder.Errors()[0], "bad predicate")
	assert.Zero(t, recorder.Completes())
}

// ============================================================================
// DoOnNext / DoOnError / DoOnComplete
// ============================================================================

// TestDoOnNextRunsBeforeForwarding 副作用回调先于下游投递执行，值不变
func TestDoOnNextRunsBeforeForwarding(t *testing.T) {
	var order []string

	Just(1, 2).
		DoOnNext(func(value interface{}) {
			order = append(order, "side")
		}).
		SubscribeWithCallbacks(
			func(value interface{}) { order = append(order, "next") },
			nil,
			nil,
		)

	assert.Equal(t, []string{"side", "next", "side", "next"}, order)
}

// TestDoOnNextPanicSuppressesItem 回调故障降级为OnError，当前值不再转发
func TestDoOnNextPanicSuppressesItem(t *testing.T) {
	recorder := newRecordingObserver()

	Just(1, 2, 3).
		DoOnNext(func(value interface{}) {
			if value.(int) == 2 {
				panic("consumer blew up")
			}
		}).
		Subscribe(recorder)

	assert.Equal(t, []interface{}{1}, recorder.Values())
	require.Len(t, recorder.Errors(), 1)
	assert.Zero(t, recorder.Completes())
}

// TestDoOnErrorObservesUpstreamError 副作用看到错误后错误继续原样转发
func TestDoOnErrorObservesUpstreamError(t *testing.T) {
	boom := errors.New("boom")
	var seen error
	recorder := newRecordingObserver()

	Error(boom).
		DoOnError(func(err error) { seen = err }).
		Subscribe(recorder)

	assert.Equal(t, boom, seen)
	require.Len(t, recorder.Errors(), 1)
	assert.Equal(t, boom, recorder.Errors()[0])
}

// TestDoOnCompleteObservesCompletion 副作用看到完成后完成继续转发
func TestDoOnCompleteObservesCompletion(t *testing.T) {
	var seen int
	recorder := newRecordingObserver()

	Empty().
		DoOnComplete(func() { seen++ }).
		Subscribe(recorder)

	assert.Equal(t, 1, seen)
	assert.Equal(t, 1, recorder.Completes())
}

// ============================================================================
// Take
// ============================================================================

// TestTakeLimitsEmissions 取前N个值后向下游发完成，上游多余发射被丢弃
func TestTakeLimitsEmissions(t *testing.T) {
	recorder := newRecordingObserver()

	Range(1, 5).Take(3).Subscribe(recorder)

	assert.Equal(t, []interface{}{1, 2, 3}, recorder.Values())
	assert.Equal(t, 1, recorder.Completes())
	assert.Empty(t, recorder.Errors())
}

// TestTakeZeroCompletesImmediately 取0个值立即完成
func TestTakeZeroCompletesImmediately(t *testing.T) {
	recorder := newRecordingObserver()

	Just(1, 2).Take(0).Subscribe(recorder)

	assert.Empty(t, recorder.Values())
	assert.Equal(t, 1, recorder.Completes())
}

// ============================================================================
// 操作符参数边界
// ============================================================================

// TestOperatorNilArgumentPanics 操作符参数缺失在调用边界同步失败
func TestOperatorNilArgumentPanics(t *testing.T) {
	observable := Just(1)

	assert.Panics(t, func() { observable.Map(nil) })
	assert.Panics(t, func() { observable.Filter(nil) })
	assert.Panics(t, func() { observable.DoOnNext(nil) })
	assert.Panics(t, func() { observable.DoOnError(nil) })
	assert.Panics(t, func() { observable.DoOnComplete(nil) })
	assert.Panics(t, func() { observable.FlatMap(nil) })
	assert.Panics(t, func() { observable.SubscribeOn(nil) })
	assert.Panics(t, func() { observable.ObserveOn(nil) })
}
