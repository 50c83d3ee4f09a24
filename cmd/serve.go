package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sheetsite/config"
	"sheetsite/web"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog web server",
	Long: `Start an HTTP server with the home page, one catalog page per configured page,
and a JSON endpoint per page.

Every request fetches the current sheet content; nothing is cached.`,
	Example: `
  # Start server on the configured port (server.port, default 8080)
  sheetsite serve

  # Start on a custom port and open the browser
  sheetsite serve --port 9090 --open
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		port := resolveServePort(servePort, cfg.Server.Port)
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           web.NewServer(newPageLoader(cfg), *cfg, os.LookupEnv, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", port)
		logger.Info("listening", zap.String("url", listenURL), zap.Int("pages", len(cfg.Pages)))
		if serveOpen {
			if openErr := openURLInBrowser(listenURL); openErr != nil {
				logger.Warn("failed to open browser", zap.Error(openErr))
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (default: server.port from config)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the home page in a browser after start")
}

func resolveServePort(flagPort, configPort int) int {
	if flagPort > 0 {
		return flagPort
	}
	if configPort > 0 {
		return configPort
	}
	return 8080
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
