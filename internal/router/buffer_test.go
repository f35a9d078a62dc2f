package router

import (
	"sync"
	"testing"
	"time"
)

func TestGrowableBuffer_SendReceive(t *testing.T) {
	b := NewGrowableBuffer[int](10)

	for i := 0; i < 5; i++ {
		if !b.Send(i) {
			t.Fatalf("Send(%d) returned false", i)
		}
	}

	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}

	for i := 0; i < 5; i++ {
		v, ok := b.Receive()
		if !ok {
			t.Fatalf("Receive() closed early at %d", i)
		}
		if v != i {
			t.Errorf("Receive() = %d, want %d (FIFO order)", v, i)
		}
	}
}

func TestGrowableBuffer_GrowsAtThreshold(t *testing.T) {
	b := NewGrowableBuffer[int](10)

	// 70% of 10 is 7, the seventh Send triggers a resize.
	for i := 0; i < 8; i++ {
		b.Send(i)
	}

	if b.Cap() <= 10 {
		t.Errorf("Cap() = %d, want > 10 after growth", b.Cap())
	}

	stats := b.Stats()
	if stats.ResizeCount == 0 {
		t.Error("expected at least one resize")
	}

	// Order survives the resize.
	for i := 0; i < 8; i++ {
		v, _ := b.Receive()
		if v != i {
			t.Errorf("after grow Receive() = %d, want %d", v, i)
		}
	}
}

func TestGrowableBuffer_GrowPreservesWrappedOrder(t *testing.T) {
	b := NewGrowableBuffer[int](10)

	// Advance head so the live region wraps around the ring.
	for i := 0; i < 5; i++ {
		b.Send(i)
	}
	for i := 0; i < 5; i++ {
		b.Receive()
	}
	for i := 10; i < 18; i++ {
		b.Send(i)
	}

	for i := 10; i < 18; i++ {
		v, _ := b.Receive()
		if v != i {
			t.Errorf("Receive() = %d, want %d", v, i)
		}
	}
}

func TestGrowableBuffer_ReceiveBlocksUntilSend(t *testing.T) {
	b := NewGrowableBuffer[string](4)

	done := make(chan string, 1)
	go func() {
		v, _ := b.Receive()
		done <- v
	}()

	time.Sleep(20 * time.Millisecond)
	b.Send("hello")

	select {
	case v := <-done:
		if v != "hello" {
			t.Errorf("Receive() = %q, want %q", v, "hello")
		}
	case <-time.After(time.Second):
		t.Fatal("Receive did not wake up after Send")
	}
}

func TestGrowableBuffer_Close(t *testing.T) {
	b := NewGrowableBuffer[int](4)
	b.Send(1)
	b.Close()

	if b.Send(2) {
		t.Error("Send after Close returned true")
	}

	// Remaining items drain before the closed signal.
	if v, ok := b.Receive(); !ok || v != 1 {
		t.Errorf("Receive() = %d, %v, want 1, true", v, ok)
	}
	if _, ok := b.Receive(); ok {
		t.Error("Receive() on drained closed buffer returned true")
	}
}

func TestGrowableBuffer_TryReceive(t *testing.T) {
	b := NewGrowableBuffer[int](4)

	if _, ok := b.TryReceive(); ok {
		t.Error("TryReceive on empty buffer returned true")
	}

	b.Send(7)
	if v, ok := b.TryReceive(); !ok || v != 7 {
		t.Errorf("TryReceive() = %d, %v, want 7, true", v, ok)
	}
}

func TestGrowableBuffer_ConcurrentProducersConsumers(t *testing.T) {
	b := NewGrowableBuffer[int](8)
	const producers = 4
	const perProducer = 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.Send(i)
			}
		}()
	}

	var consumed int64
	var cwg sync.WaitGroup
	var mu sync.Mutex
	for c := 0; c < 2; c++ {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			for {
				if _, ok := b.Receive(); !ok {
					return
				}
				mu.Lock()
				consumed++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	b.Close()
	cwg.Wait()

	if consumed != producers*perProducer {
		t.Errorf("consumed = %d, want %d", consumed, producers*perProducer)
	}
}
