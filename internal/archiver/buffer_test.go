package archiver

import (
	"sync"
	"testing"
	"time"
)

func TestBuffer_BasicSendReceive(t *testing.T) {
	buf := NewBuffer[int](10)

	for i := 0; i < 5; i++ {
		if !buf.Send(i) {
			t.Fatalf("Send(%d) returned false", i)
		}
	}

	if buf.Len() != 5 {
		t.Errorf("Len() = %d, want 5", buf.Len())
	}

	for i := 0; i < 5; i++ {
		val, ok := buf.Receive()
		if !ok {
			t.Fatalf("Receive() returned false for item %d", i)
		}
		if val != i {
			t.Errorf("received %d, want %d", val, i)
		}
	}

	if buf.Len() != 0 {
		t.Errorf("Len() = %d, want 0", buf.Len())
	}
}

func TestBuffer_GrowAt70Percent(t *testing.T) {
	buf := NewBuffer[int](10)

	// 7 items is 70% of 10
	for i := 0; i < 7; i++ {
		buf.Send(i)
	}

	stats := buf.Stats()
	if stats.Capacity <= 10 {
		t.Errorf("Capacity = %d, expected growth after 70%% fill", stats.Capacity)
	}
	if stats.ResizeCount != 1 {
		t.Errorf("ResizeCount = %d, want 1", stats.ResizeCount)
	}

	// Items survive the resize in order
	for i := 0; i < 7; i++ {
		val, ok := buf.Receive()
		if !ok {
			t.Fatalf("Receive() returned false for item %d", i)
		}
		if val != i {
			t.Errorf("received %d, want %d", val, i)
		}
	}
}

func TestBuffer_MultipleGrows(t *testing.T) {
	buf := NewBuffer[int](4)

	for i := 0; i < 100; i++ {
		if !buf.Send(i) {
			t.Fatalf("Send(%d) returned false", i)
		}
	}

	stats := buf.Stats()
	if stats.Count != 100 {
		t.Errorf("Count = %d, want 100", stats.Count)
	}
	if stats.ResizeCount < 3 {
		t.Errorf("ResizeCount = %d, expected at least 3 resizes", stats.ResizeCount)
	}

	for i := 0; i < 100; i++ {
		val, ok := buf.Receive()
		if !ok {
			t.Fatalf("Receive() returned false for item %d", i)
		}
		if val != i {
			t.Errorf("received %d, want %d", val, i)
		}
	}
}

func TestBuffer_BlockingReceive(t *testing.T) {
	buf := NewBuffer[int](10)

	received := make(chan int, 1)
	go func() {
		val, ok := buf.Receive()
		if ok {
			received <- val
		}
	}()

	// Give the receiver time to start waiting
	time.Sleep(10 * time.Millisecond)

	buf.Send(42)

	select {
	case val := <-received:
		if val != 42 {
			t.Errorf("received %d, want 42", val)
		}
	case <-time.After(time.Second):
		t.Fatal("Receive() did not wake up")
	}
}

func TestBuffer_CloseDrainsThenSignals(t *testing.T) {
	buf := NewBuffer[string](10)

	buf.Send("a")
	buf.Send("b")
	buf.Close()

	if buf.Send("c") {
		t.Error("Send() after Close() returned true")
	}

	// Remaining items drain in order
	for _, want := range []string{"a", "b"} {
		val, ok := buf.Receive()
		if !ok {
			t.Fatalf("Receive() returned false before drain complete")
		}
		if val != want {
			t.Errorf("received %q, want %q", val, want)
		}
	}

	// Then the closed signal
	if _, ok := buf.Receive(); ok {
		t.Error("Receive() returned true on closed empty buffer")
	}
}

func TestBuffer_CloseWakesBlockedReceivers(t *testing.T) {
	buf := NewBuffer[int](10)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := buf.Receive(); ok {
				t.Error("Receive() = true on empty closed buffer")
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	buf.Close()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("blocked receivers not woken by Close()")
	}
}

func TestBuffer_ConcurrentSendReceive(t *testing.T) {
	buf := NewBuffer[int](8)
	const n = 1000

	go func() {
		for i := 0; i < n; i++ {
			buf.Send(i)
		}
		buf.Close()
	}()

	seen := 0
	for {
		_, ok := buf.Receive()
		if !ok {
			break
		}
		seen++
	}

	if seen != n {
		t.Errorf("received %d items, want %d", seen, n)
	}

	stats := buf.Stats()
	if stats.TotalReceived != n || stats.TotalSent != n {
		t.Errorf("stats = %+v, want %d in and out", stats, n)
	}
}
