// Command levelctl drives the client side of the level exchange from a
// terminal: it validates and canonicalizes level files, and pushes or
// fetches the server's test-level slot.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"gsnake-editor-api/internal/editor"
	"gsnake-editor-api/internal/level"
)

func main() {
	cmd := &cli.Command{
		Name:  "levelctl",
		Usage: "validate, normalize and exchange gsnake level files",
		Commands: []*cli.Command{
			validateCommand(),
			normalizeCommand(),
			pushCommand(),
			fetchCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serverFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "server",
		Value: "http://localhost:8080",
		Usage: "base URL of the editor API",
	}
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check a level file against the load rules",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("missing level file argument")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			state, err := editor.Load(data)
			if err != nil {
				return err
			}

			fmt.Printf("%s: ok (%q, grid %dx%d, %d snake segments)\n",
				path, state.Name, state.Width, state.Height, len(state.Segments))
			return nil
		},
	}
}

func normalizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "re-export a level file in canonical key order",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "write to a file instead of stdout",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("missing level file argument")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			state, err := editor.Load(data)
			if err != nil {
				return err
			}

			def, err := editor.Export(*state, int64(state.ID))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(def, "", "  ")
			if err != nil {
				return err
			}
			out = append(out, '\n')

			if target := c.String("output"); target != "" {
				return os.WriteFile(target, out, 0o644)
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

func pushCommand() *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "store a level file in the server's test slot",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{serverFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("missing level file argument")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			url := c.String("server") + "/api/test-level"
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := httpClient().Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return describeRejection(resp.StatusCode, body)
			}

			fmt.Println("test level stored")
			return nil
		},
	}
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "print the server's current test level",
		Flags: []cli.Flag{serverFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			url := c.String("server") + "/api/test-level"
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}

			resp, err := httpClient().Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return describeRejection(resp.StatusCode, body)
			}

			_, err = os.Stdout.Write(append(body, '\n'))
			return err
		},
	}
}

// describeRejection turns a 4xx response into a readable error, listing the
// field-level details when the server provides them.
func describeRejection(status int, body []byte) error {
	var parsed struct {
		Error   string                   `json:"error"`
		Details []level.ValidationDetail `json:"details"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == "" {
		return fmt.Errorf("server returned status %d", status)
	}

	msg := parsed.Error
	for _, d := range parsed.Details {
		msg += fmt.Sprintf("\n  %s: %s (%s)", d.Field, d.Message, d.Keyword)
	}
	return fmt.Errorf("%s", msg)
}
