package sched

import "testing"

func TestAsyncCompletes(t *testing.T) {
	var set AsyncSet
	finished := false
	result := false

	done := false
	ok := set.Start("sync", 0, 1000, func() bool { return done }, func(r bool) {
		finished = true
		result = r
	})
	if !ok {
		t.Fatal("Start failed with free slots")
	}
	if !set.Pending() {
		t.Fatal("not pending after Start")
	}

	set.PollAll(100)
	if finished {
		t.Fatal("completed before the operation finished")
	}

	done = true
	set.PollAll(200)
	if !finished || !result {
		t.Fatalf("finished=%v result=%v, want completion with ok", finished, result)
	}
	if set.Pending() {
		t.Fatal("still pending after completion")
	}
}

func TestAsyncTimesOut(t *testing.T) {
	var set AsyncSet
	var result *bool
	set.Start("connect", 0, 500, func() bool { return false }, func(r bool) {
		result = &r
	})

	set.PollAll(499)
	if result != nil {
		t.Fatal("timed out early")
	}
	set.PollAll(500)
	if result == nil {
		t.Fatal("did not time out at the deadline")
	}
	if *result {
		t.Fatal("timeout reported as success")
	}
}

func TestAsyncSlotLimit(t *testing.T) {
	var set AsyncSet
	never := func() bool { return false }
	for i := 0; i < maxAsync; i++ {
		if !set.Start("op", 0, 0, never, nil) {
			t.Fatalf("Start %d failed below capacity", i)
		}
	}
	if set.Start("op", 0, 0, never, nil) {
		t.Fatal("Start succeeded beyond capacity")
	}
	if set.Start("op", 0, 0, nil, nil) {
		t.Fatal("Start accepted a nil poll")
	}
}

func TestAsyncZeroTimeoutNeverExpires(t *testing.T) {
	var set AsyncSet
	called := false
	set.Start("scan", 0, 0, func() bool { return false }, func(bool) { called = true })

	set.PollAll(1 << 30)
	if called || !set.Pending() {
		t.Fatal("zero-timeout task expired")
	}
}
