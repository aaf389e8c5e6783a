package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/server"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = os.Getenv("MATHWHIZ_ADDR")
		}
		if addr == "" {
			addr = ":8080"
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		verifier, err := newVerifier(cmd.Context(), st)
		if err != nil {
			return err
		}

		sessionCfg, err := server.SessionConfigFromEnv()
		if err != nil {
			return err
		}
		sessionStore, err := server.NewSessionStore(sessionCfg)
		if err != nil {
			return err
		}

		api := server.New(newGenerator(cmd), verifier, sessionStore)
		srv := &http.Server{
			Addr:              addr,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on %s (model %s)", addr, verifier.ModelID())
			log.Println("Endpoints:")
			log.Println("  GET  /health")
			log.Println("  GET/POST /api/round")
			log.Println("  POST /api/round/answer")
			log.Println("  POST /api/verify")

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case <-quit:
		}
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}

		log.Println("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MATHWHIZ_ADDR, default :8080)")
	serveCmd.Flags().Uint64("seed", 0, "Seed the problem generator (0 = random)")
}
