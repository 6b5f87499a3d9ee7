package executor

// ticker is the minimal clock-reading capability SleepFuture needs;
// satisfied by *rtc.Clock without this package importing internal/rtc
// (rtc_future.go takes the RTC driver through an interface the same
// way).
type ticker interface {
	Ticks() uint32
}

// SleepFuture completes once the clock has advanced to its target
// tick. The target is computed once at creation, and a wake-up list
// entry is registered so the executor is kicked out of hlt the moment
// the target tick arrives rather than only discovering it next time
// something else polls.
type SleepFuture struct {
	clock  ticker
	target uint32
}

// NewSleepFuture returns a future that becomes Ready once clock's tick
// count reaches clock.Ticks()+ticks, registering a wake-up callback on
// wakeups that calls executor.WakeUp when the target is reached.
func NewSleepFuture(clock ticker, wakeups *WakeUpList, executor *Executor, ticks uint32) *SleepFuture {
	target := clock.Ticks() + ticks
	f := &SleepFuture{clock: clock, target: target}
	wakeups.Add(target, executor.WakeUp)
	return f
}

func (f *SleepFuture) Poll() State {
	if f.clock.Ticks() >= f.target {
		return Ready
	}
	return Pending
}

func (f *SleepFuture) Cleanup() {}
