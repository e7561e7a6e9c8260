package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/msomdec/edunova/internal/mockapi"
	"github.com/msomdec/edunova/internal/remote/wire"
)

func demoCourses() []wire.CourseRequest {
	intro := "Variables, boucles et fonctions"
	return []wire.CourseRequest{
		{Title: "Introduction à la programmation", Description: &intro, TeacherID: 3},
		{Title: "Bases de données", TeacherID: 3},
	}
}

// runServeMock serves the in-memory backend until the context is cancelled.
func runServeMock(c *commandContext, args []string) error {
	fs := flag.NewFlagSet("serve-mock", flag.ContinueOnError)
	fs.SetOutput(c.Out)
	addr := fs.String("addr", c.Config.Mock.Addr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logOpts := &slog.HandlerOptions{Level: c.Config.SlogLevel()}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))

	backend, err := mockapi.New(mockapi.Options{
		JWTSecret: c.Config.Mock.JWTSecret,
		Courses:   demoCourses(),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer backend.Close()

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", *addr, err)
	}
	return serve(c.Ctx, ln, backend.Handler(), logger)
}

// serve runs an HTTP server on ln and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, ln net.Listener, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mock backend starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down mock backend")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("mock backend stopped")
	return nil
}
