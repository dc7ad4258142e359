package service

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var manager *Manager
var once sync.Once

// Manager ties the process lifetime to SIGINT/SIGTERM. Background work registers with the wait group and
// watches Context; teardown functions run in registration order once every worker has returned.
type Manager struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        *sync.WaitGroup
	lock      sync.Mutex
	teardowns []func()
}

func GetTeardownManager() *Manager {
	once.Do(func() {
		manager = NewManager(context.Background())
		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sig:
				manager.Shutdown()
			case <-manager.ctx.Done():
			}
		}()
	})
	return manager
}

func NewManager(parent context.Context) *Manager {
	ctx, cancel := context.WithCancel(parent)
	return &Manager{
		ctx:    ctx,
		cancel: cancel,
		wg:     &sync.WaitGroup{},
	}
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) WaitGroup() *sync.WaitGroup {
	return m.wg
}

func (m *Manager) TeardownFunc(f func()) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.teardowns = append(m.teardowns, f)
}

func (m *Manager) Shutdown() {
	m.cancel()
}

// Wait blocks until the context is cancelled and all workers are done, then runs teardown functions.
func (m *Manager) Wait() {
	<-m.ctx.Done()
	m.wg.Wait()

	m.lock.Lock()
	defer m.lock.Unlock()
	for _, f := range m.teardowns {
		f()
	}
}
