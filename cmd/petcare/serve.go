package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"petcare-companion/internal/backend/backendtest"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway sharing this CLI session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.run(func() error { return c.app.Serve(ctx, addr) })
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}

func (c *cli) mockBackendCmd() *cobra.Command {
	var addr string
	var demo bool
	cmd := &cobra.Command{
		Use:         "mock-backend",
		Short:       "Run an in-memory fake of the PetCare REST API",
		Annotations: map[string]string{"bootstrap": "none"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := backendtest.New()
			if demo {
				seedDemo(srv)
			}
			hs := &http.Server{Addr: addr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				_ = hs.Close()
			}()

			cmd.Printf("mock backend on http://%s%s\n", addr, "/api/petcare")
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return c.fail(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().BoolVar(&demo, "demo", true, "seed demo users and pets")
	return cmd
}

// seedDemo deja dos usuarios con mascotas, una publicación en adopción y
// una colonia con código DEMO2025.
func seedDemo(s *backendtest.Server) {
	s.Seed(backendtest.Users,
		map[string]any{"id": 1, "nombre": "Ana López", "email": "ana@example.com", "password": "secreta", "telefono": "5551234567"},
		map[string]any{"id": 2, "nombre": "Beto Ruiz", "email": "beto@example.com", "password": "secreta"},
	)
	s.Seed(backendtest.Pets,
		map[string]any{"id": 10, "usuarioId": 1, "nombre": "Luna", "especie": "Perro", "raza": "Mestiza", "peso": "12.5", "vacunado": true},
		map[string]any{"id": 11, "usuarioId": 2, "nombre": "Michi", "especie": "Gato", "raza": "Siamés", "esterilizado": true},
	)
	s.Seed(backendtest.Listings,
		map[string]any{"id": 20, "mascotaId": 11, "usuarioId": 2, "disponible": true, "fechaPublicacion": "2025-03-01T10:00:00Z"},
	)
	s.Seed(backendtest.Posts,
		map[string]any{"id": 30, "usuarioId": 2, "contenido": "Michi busca hogar", "fechaCreacion": "2025-03-02T09:00:00Z"},
	)
	s.Seed(backendtest.Neighborhoods,
		map[string]any{"id": 40, "nombre": "Condesa", "codigoInvitacion": "DEMO2025", "usuarioId": 2},
	)
}
