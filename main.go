package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/gifty-speed/counter"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gifty-speed",
		Short: "Gifty's speed biking site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), loadConfig())
		},
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), loadConfig())
		},
	})
	root.AddCommand(newCountCmd())
	return root
}

func serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	site, err := loadSite(cfg.ContentFile)
	if err != nil {
		return err
	}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	a := newAdmin(store, cfg.AdminUsername, cfg.AdminPassword)
	go a.cleanupOldVisitorData()

	loop := counter.NewLoop(cfg.FrameRate)
	go loop.Run(ctx)

	r := newRouter(&server{site: site, store: store, loop: loop, admin: a})
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newCountCmd() *cobra.Command {
	var (
		duration time.Duration
		prefix   string
		suffix   string
		decimals int
	)

	cmd := &cobra.Command{
		Use:   "count <end>",
		Short: "Animate a counter in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			end, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid end value %q: %w", args[0], err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runCount(ctx, newTerminal(cmd.OutOrStdout()), end,
				counter.WithDuration(duration),
				counter.WithPrefix(prefix),
				counter.WithSuffix(suffix),
				counter.WithDecimals(decimals),
			)
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", counter.DefaultDuration, "animation length")
	cmd.Flags().StringVar(&prefix, "prefix", "", "text shown before the number")
	cmd.Flags().StringVar(&suffix, "suffix", "", "text shown after the number")
	cmd.Flags().IntVar(&decimals, "decimals", 0, "fractional digits")
	return cmd
}
