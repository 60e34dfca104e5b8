package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-lessonbook"
	"github.com/alnah/go-lessonbook/internal/config"
	"github.com/alnah/go-lessonbook/internal/fetch"
	"github.com/alnah/go-lessonbook/internal/logger"
)

// CLIConverter is the interface for the booklet converter.
type CLIConverter interface {
	Convert(ctx context.Context, input lessonbook.Input) (*lessonbook.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*lessonbook.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// Downloader fetches a quarter of lessons.
type Downloader interface {
	Download(ctx context.Context, p fetch.Paths, r fetch.Range) (*fetch.Bundle, error)
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Log    *logger.Logger

	NewPool       func(size int, opts ...lessonbook.Option) Pool
	NewDownloader func(cfg *config.Config, log *logger.Logger) Downloader

	logReady bool // set once -q/-v have configured Log
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:           time.Now,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Log:           logger.Nop(),
		NewPool:       newConverterPool,
		NewDownloader: newDownloader,
	}
}

func newConverterPool(size int, opts ...lessonbook.Option) Pool {
	return &poolAdapter{pool: lessonbook.NewConverterPool(size, opts...)}
}

func newDownloader(cfg *config.Config, log *logger.Logger) Downloader {
	return fetch.NewClient(
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithWorkers(cfg.Fetch.Workers),
		fetch.WithLogger(log),
	)
}

// poolAdapter exposes lessonbook.ConverterPool through the Pool interface.
type poolAdapter struct {
	pool *lessonbook.ConverterPool
}

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*lessonbook.Converter)
	if !ok {
		panic("poolAdapter.Release: unexpected type")
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
