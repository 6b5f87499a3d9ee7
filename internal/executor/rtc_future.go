package executor

// rtcReader is the capability RTCReadFuture needs from the RTC driver
// (internal/rtc.Driver satisfies it).
type rtcReader interface {
	ReadTime() (seconds, minutes, hours uint8)
}

// RTCReadFuture completes a synchronous RTC read in a single poll: the
// driver's own update-in-progress retry loop already bounds the wait,
// so there is no pending state to track across polls.
type RTCReadFuture struct {
	driver                  rtcReader
	Seconds, Minutes, Hours uint8
	done                    bool
}

// NewRTCReadFuture returns a future that reads the current time from
// driver on its first poll.
func NewRTCReadFuture(driver rtcReader) *RTCReadFuture {
	return &RTCReadFuture{driver: driver}
}

func (f *RTCReadFuture) Poll() State {
	if f.done {
		return Ready
	}
	f.Seconds, f.Minutes, f.Hours = f.driver.ReadTime()
	f.done = true
	return Ready
}

func (f *RTCReadFuture) Cleanup() {}
