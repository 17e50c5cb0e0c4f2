// Command petcare es el cliente de terminal de PetCare: las mismas pantallas
// del gateway, renderizadas como tablas.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"petcare-companion/internal/app"
	"petcare-companion/internal/config"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli guarda lo compartido entre subcomandos. app se arma en PersistentPreRunE.
type cli struct {
	out, errOut io.Writer

	configPath string
	apiURL     string
	asJSON     bool
	verbose    bool

	cfg *config.Config
	app *app.App
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "petcare",
		Short:         "PetCare terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["bootstrap"] == "none" {
				return nil
			}
			return c.open(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			c.flushNotifications()
			if c.app != nil {
				c.app.Close()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "path to the YAML config (default $PETCARE_CONFIG)")
	pf.StringVar(&c.apiURL, "api-url", "", "backend URL, overrides the config")
	pf.BoolVar(&c.asJSON, "json", false, "print the view as JSON")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.registerCmd(),
		c.feedCmd(),
		c.petsCmd(),
		c.adoptionsCmd(),
		c.financeCmd(),
		c.hoodCmd(),
		c.profileCmd(),
		c.serveCmd(),
		c.mockBackendCmd(),
	)

	return root
}

func (c *cli) open(ctx context.Context) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return c.fail(err)
	}
	if c.apiURL != "" {
		cfg.Backend.BaseURL = c.apiURL
		if err := cfg.Validate(); err != nil {
			return c.fail(err)
		}
	}
	// stdout es para resultados; las notificaciones se imprimen al final
	if c.verbose {
		cfg.Logging.Level = "debug"
	} else {
		cfg.Logging.Level = "error"
	}
	c.cfg = cfg

	a, err := app.New(ctx, cfg, app.NewLogger(cfg, nil))
	if err != nil {
		return c.fail(err)
	}
	c.app = a
	return nil
}

// fail imprime el error con estilo y lo devuelve para que cobra salga con 1.
func (c *cli) fail(err error) error {
	fmt.Fprintln(c.errOut, styles.danger.Render("error: "+err.Error()))
	return err
}

// run ejecuta una acción y, si falla, imprime el error.
func (c *cli) run(fn func() error) error {
	if err := fn(); err != nil {
		c.flushNotifications()
		return c.fail(err)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
