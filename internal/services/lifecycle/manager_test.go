package lifecycle

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestManager_ShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"db", "monitor", "http"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if want := []string{"http", "monitor", "db"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}

	// second call is a no-op
	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("hooks ran twice: %v", order)
	}
}

func TestManager_ShutdownJoinsErrors(t *testing.T) {
	m := New(time.Second, nil)
	errA := errors.New("a failed")
	ran := false
	m.Register("a", func(context.Context) error { return errA })
	m.Register("b", func(context.Context) error { ran = true; return nil })

	err := m.Shutdown(context.Background())
	if !errors.Is(err, errA) {
		t.Fatalf("err = %v, want %v", err, errA)
	}
	if !ran {
		t.Fatal("a failing hook must not stop the others")
	}
}

func TestManager_WaitReturnsComponentError(t *testing.T) {
	m := New(time.Second, nil)
	boom := errors.New("listen failed")
	m.Go("http", func() error { return boom })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.Wait(ctx); !errors.Is(err, boom) {
		t.Fatalf("Wait = %v, want %v", err, boom)
	}
}

func TestManager_WaitReturnsOnContextCancel(t *testing.T) {
	m := New(time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Wait(ctx); err != nil {
		t.Fatalf("Wait = %v", err)
	}
}
