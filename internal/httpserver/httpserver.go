package httpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Run starts the audit loop and the HTTP server, then blocks until a
// shutdown signal arrives:
//  1. Map HTTP handlers and routes
//  2. Start the audit loop in the background
//  3. Start the HTTP server
//  4. Wait for SIGINT/SIGTERM and stop the loop
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.logger.Fatalf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- srv.auditorUC.Run(loopCtx)
	}()
	srv.logger.Info(ctx, "Audit loop background service started")

	go func() {
		if err := srv.gin.Run(fmt.Sprintf(":%d", srv.port)); err != nil {
			srv.logger.Errorf(ctx, "HTTP server error: %v", err)
		}
	}()

	srv.logger.Infof(ctx, "HTTP server started on port: %d", srv.port)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	srv.logger.Info(ctx, <-ch)
	srv.logger.Info(ctx, "Stopping audit service...")

	stopLoop()
	if err := <-loopDone; err != nil {
		srv.logger.Errorf(ctx, "Audit loop shutdown error: %v", err)
	}

	return nil
}
