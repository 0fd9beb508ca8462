// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"taskflow/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogSignalReceived  = "shutdown signal received"
	LogShutdownTimeout = "shutdown timeout exceeded, exiting anyway"
	ErrShutdownHook    = "shutdown hook failed"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем выполняет все хуки в рамках заданного timeout.
func Wait(parent context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	log := logger.Log(ctx)
	log.Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn func(context.Context) error) {
			defer wgp.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, ErrShutdownHook, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, LogShutdownTimeout)
	}
}
