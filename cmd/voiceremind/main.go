package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"voiceremind/internal/app"
	"voiceremind/internal/app/deps"
	"voiceremind/internal/app/services"
	schedulependingreminders "voiceremind/internal/core/services/schedule_pending_reminders"

	dl "voiceremind/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	schedulePending(deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, services, shutdownDeps)
}

// schedulePending re-arms timers for reminders that were persisted but not
// sent before the last shutdown.
func schedulePending(deps *deps.Deps, services *services.Services) {
	result, err := services.SchedulePendingReminders.Run(
		context.Background(),
		schedulependingreminders.Input{},
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not schedule pending reminders.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(
		context.Background(),
		"Pending reminders scheduled.",
		dl.Entry("scheduledCount", result.ScheduledCount),
		dl.Entry("pastDueCount", result.PastDueCount),
	)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(
	ctx context.Context,
	server *http.Server,
	deps *deps.Deps,
	services *services.Services,
	shutDownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	services.Scheduler.Stop()
	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
