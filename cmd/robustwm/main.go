// Package main is the entry point for robustwm, a client for the watermark
// robustness demo backend. It drives the backend's upload, watermark, edit,
// and detection endpoints from the command line, keeps the pipeline state of
// one session in a local state file, and can serve a local web UI that
// reproduces the browser flow.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/wmlab/robustwm/internal/backend"
	"github.com/wmlab/robustwm/internal/config"
	"github.com/wmlab/robustwm/internal/models"
	"github.com/wmlab/robustwm/internal/pipeline"
	"github.com/wmlab/robustwm/internal/session"
	"github.com/wmlab/robustwm/internal/utils"
	"github.com/wmlab/robustwm/internal/webui"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is a non-fatal condition, as configuration
	// might be provided by other means.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Warning: .env file couldn't be loaded")
		}
	}
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	app := &cli.App{
		Name:    "robustwm",
		Usage:   "client for the watermark robustness demo backend",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./configs/config.yaml",
				Usage:   "path to configuration file",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "backend base URL (overrides configuration)",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "session state file (overrides configuration)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log verbosity (overrides configuration)",
			},
		},
		Commands: []*cli.Command{
			loadCommand(),
			uploadCommand(),
			watermarkCommand(),
			editCommand(),
			checkCommand(),
			demoCommand(),
			downloadCommand(),
			statsCommand(),
			clearCommand(),
			exportCommand(),
			batchCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and the persisted session, and wires the
// pipeline controller. Every command goes through here so each invocation
// reads the latest persisted state.
func bootstrap(c *cli.Context) (*pipeline.Controller, *session.Store, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return nil, nil, err
	}

	if backendURL := c.String("backend"); backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}
	if stateFile := c.String("state"); stateFile != "" {
		cfg.Session.StateFile = stateFile
	}
	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)
	if level := c.String("log-level"); level != "" {
		if err := utils.SetLogLevel(level); err != nil {
			return nil, nil, fail("config", err)
		}
	}
	utils.InitValidator()

	store := session.NewStore(cfg.Session.StateFile)
	sess, err := store.Load()
	if err != nil {
		return nil, nil, fail("session", err)
	}

	client := backend.NewClient(&cfg.Backend)
	return pipeline.NewController(client, cfg, store, sess), store, nil
}

// fail logs a stage failure and converts it into the user-facing message,
// the CLI analogue of the blocking alert.
func fail(stage string, err error) error {
	appErr := utils.ParseError(err)
	utils.LogStageFailure(stage, err)
	fmt.Fprintf(os.Stderr, "Error: %s\n", appErr.Message)
	return cli.Exit("", 1)
}

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "select a local image, resetting the pipeline chain",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: robustwm load <path>", 1)
			}
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			f, err := ctl.SelectFile(c.Args().First())
			if err != nil {
				return fail("load", err)
			}
			fmt.Printf("Selected %s (%s)\n", f.Name, utils.FormatByteSize(f.Size))
			return nil
		},
	}
}

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "upload the selected image to the backend",
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			name, err := ctl.EnsureUploaded(c.Context)
			if err != nil {
				return fail("upload", err)
			}
			if name == "" {
				fmt.Println("Upload succeeded but the backend returned no filename")
				return nil
			}
			fmt.Printf("Uploaded as %s\n", name)
			return nil
		},
	}
}

func watermarkCommand() *cli.Command {
	return &cli.Command{
		Name:  "watermark",
		Usage: "embed a text or image watermark (uploads lazily if needed)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Value: "text", Usage: "watermark mode: text or image"},
			&cli.StringFlag{Name: "text", Usage: "watermark text (default SAMPLE)"},
			&cli.Float64Flag{Name: "opacity", Usage: "watermark opacity"},
			&cli.IntFlag{Name: "fontsize", Usage: "text watermark font size"},
			&cli.StringFlag{Name: "image", Usage: "path of the watermark image (image mode)"},
			&cli.Float64Flag{Name: "scale", Usage: "image watermark scale"},
		},
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			cfg := models.WatermarkConfig{
				Mode:      models.WatermarkMode(c.String("mode")),
				Text:      c.String("text"),
				Opacity:   c.Float64("opacity"),
				FontSize:  c.Int("fontsize"),
				ImagePath: c.String("image"),
				Scale:     c.Float64("scale"),
			}
			name, err := ctl.Watermark(c.Context, cfg)
			if err != nil {
				return fail("watermark", err)
			}
			fmt.Printf("Watermarked: %s\nDisplayed at %s\n", name, ctl.DisplayURL())
			return nil
		},
	}
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "resize or crop the latest pipeline image",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "op", Value: "resize", Usage: "edit operation: resize or crop"},
			&cli.IntFlag{Name: "w", Usage: "resize width"},
			&cli.IntFlag{Name: "h", Usage: "resize height"},
			&cli.IntFlag{Name: "x", Usage: "crop origin x"},
			&cli.IntFlag{Name: "y", Usage: "crop origin y"},
			&cli.IntFlag{Name: "crop-w", Usage: "crop width"},
			&cli.IntFlag{Name: "crop-h", Usage: "crop height"},
		},
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			op := models.EditOp{
				Op:         c.String("op"),
				Width:      c.Int("w"),
				Height:     c.Int("h"),
				X:          c.Int("x"),
				Y:          c.Int("y"),
				CropWidth:  c.Int("crop-w"),
				CropHeight: c.Int("crop-h"),
			}
			name, err := ctl.Edit(c.Context, op)
			if err != nil {
				return fail("edit", err)
			}
			fmt.Printf("Edited: %s\nDisplayed at %s\n", name, ctl.DisplayURL())
			return nil
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "run watermark detection against a backend-side template",
		ArgsUsage: "<template-filename>",
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			result, err := ctl.Check(c.Context, c.Args().First())
			if err != nil {
				return fail("check", err)
			}
			fmt.Println(result.Report)
			fmt.Printf("Tests: %d  Found: %d  Score: %s\n",
				result.Stats.Tests, result.Stats.Found, result.Stats.LastScore)
			return nil
		},
	}
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "run the quick demonstration: upload, text watermark, resize to 75%",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Usage: "watermark text (default SAMPLE)"},
			&cli.Float64Flag{Name: "opacity", Usage: "watermark opacity"},
			&cli.IntFlag{Name: "fontsize", Usage: "text watermark font size"},
		},
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			cfg := models.WatermarkConfig{
				Mode:     models.WatermarkText,
				Text:     c.String("text"),
				Opacity:  c.Float64("opacity"),
				FontSize: c.Int("fontsize"),
			}
			result, err := ctl.QuickDemo(c.Context, cfg)
			if err != nil {
				return fail("demo", err)
			}
			fmt.Printf("Uploaded:    %s\nWatermarked: %s\nResized:     %s\nDisplayed at %s\n",
				result.Uploaded, result.Watermarked, result.Edited, result.DisplayURL)
			return nil
		},
	}
}

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "save the currently displayed image",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: ".", Usage: "destination directory"},
		},
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			path, err := ctl.Download(c.Context, c.String("dir"))
			if err != nil {
				return fail("download", err)
			}
			fmt.Printf("Saved %s\n", path)
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "show session state and detection statistics",
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			s := ctl.Session()
			if s.HasLocal() {
				fmt.Printf("Local:       %s (%s)\n", s.Local.Name, utils.FormatByteSize(s.Local.Size))
			}
			fmt.Printf("Uploaded:    %s\nWatermarked: %s\nEdited:      %s\n",
				orDash(s.Uploaded), orDash(s.Watermarked), orDash(s.Edited))
			fmt.Printf("Tests: %d  Found: %d  Score: %s\n",
				s.Stats.Tests, s.Stats.Found, orDash(s.Stats.LastScore))
			return nil
		},
	}
}

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "discard the session state",
		Action: func(c *cli.Context) error {
			ctl, store, err := bootstrap(c)
			if err != nil {
				return err
			}
			ctl.Session().Clear()
			if err := store.Reset(); err != nil {
				return fail("clear", err)
			}
			fmt.Println("Session cleared")
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export all produced images (not implemented yet)",
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			fmt.Println(ctl.ExportAll())
			return nil
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "run a batch of transforms (not implemented yet)",
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			fmt.Println(ctl.BatchTransforms())
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the local web UI and proxy the backend endpoints",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "bind host (overrides configuration)"},
			&cli.IntFlag{Name: "port", Usage: "bind port (overrides configuration)"},
		},
		Action: func(c *cli.Context) error {
			ctl, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			cfg := config.Get()
			if host := c.String("host"); host != "" {
				cfg.WebUI.Host = host
			}
			if port := c.Int("port"); port != 0 {
				cfg.WebUI.Port = port
			}

			srv, err := webui.NewServer(cfg, ctl)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to create web UI server")
			}
			if err := srv.Start(); err != nil {
				log.Fatal().Err(err).Msg("Server error")
			}
			return nil
		},
	}
}

// orDash substitutes a dash for an empty value in status output.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
