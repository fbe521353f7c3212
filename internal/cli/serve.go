/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/guard/internal/config"
	"dirpx.dev/guard/safe/filesystem"
	"dirpx.dev/guard/safe/session"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveRoot string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve guarded operations over HTTP",
	Long: `Start an HTTP server that runs guarded operations. A failed operation
is answered with the status resolved by the status mapper and a
google.rpc.Status body.

Routes:
  GET    /v1/operations[?category=c]
  POST   /v1/zlib/:op[?level=n|?max_length=n]
  POST   /v1/hash/:algo[?key=k]
  POST   /v1/url/parse
  POST   /v1/yaml/parse[?pos=n]
  GET    /v1/fs/*path[?offset=n&length=n]
  POST   /v1/session
  GET    /v1/session/:id
  DELETE /v1/session/:id

Sessions are kept in memory or in Redis (GUARD_SESSION_BACKEND=redis).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: $GUARD_LISTEN_ADDR)")
	serveCmd.Flags().StringVar(&serveRoot, "root", "", "Directory served under /v1/fs (default: $GUARD_ROOT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if serveAddr != "" {
		e.cfg.ListenAddr = serveAddr
	}
	if serveRoot != "" {
		e.cfg.Root = serveRoot
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	gin.SetMode(gin.ReleaseMode)
	s := newServer(filesystem.OS(e.cfg.Root), store, e.cfg.SessionTTL, e.mapper, e.log)
	srv := &http.Server{
		Addr:         e.cfg.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("listening", "addr", srv.Addr, "root", e.cfg.Root, "sessions", store.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		e.log.Info("server stopped")
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

// openStore returns the session store selected by cfg and its release func.
func openStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case "", "memory":
		return session.NewMemoryStore(), func() {}, nil
	case "redis":
		client, err := session.DialRedis(ctx, session.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client, ""), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
