// Command souqctl inspects and reseeds a souq store from the shell.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"souq-be/internal/app"
	"souq-be/internal/config"
	"souq-be/internal/logger"
	"souq-be/internal/seed"
	"souq-be/internal/storage"
	"souq-be/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type session struct {
	store    *store.Store
	services app.Services
	close    func() error
}

// open builds a store over the configured backend with every collection
// registered, so Names and ResetAll see all of them.
func open(ctx context.Context, envFile string) (*session, error) {
	var cfg *config.Config
	if envFile != "" {
		cfg = config.LoadConfig(envFile)
	} else {
		cfg = config.LoadConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := store.New(backend, nil, store.WithNamespace(cfg.StorageNamespace))
	return &session{store: s, services: app.NewServices(s), close: backend.Close}, nil
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "souqctl",
		Short:         "Inspect and reseed the souq entity store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")

	withSession := func(run func(cmd *cobra.Command, args []string, ss *session) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ss, err := open(cmd.Context(), envFile)
			if err != nil {
				return err
			}
			defer func() {
				_ = ss.close()
				logger.Sync()
			}()
			return run(cmd, args, ss)
		}
	}

	var fixture string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Clear the store and load a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, _ []string, ss *session) error {
			fx, err := seed.LoadFile(fixture)
			if err != nil {
				return err
			}
			counts, err := seed.Apply(cmd.Context(), ss.store, ss.services, fx)
			if err != nil {
				return err
			}
			return printJSON(cmd, counts)
		}),
	}
	seedCmd.Flags().StringVarP(&fixture, "file", "f", "fixtures/demo.yaml", "fixture file")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every collection from the store",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, _ []string, ss *session) error {
			if err := ss.store.ResetAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "store cleared")
			return nil
		}),
	}

	namesCmd := &cobra.Command{
		Use:   "names",
		Short: "List collection names",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, _ []string, ss *session) error {
			for _, n := range ss.store.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		}),
	}

	listCmd := &cobra.Command{
		Use:   "list <collection>",
		Short: "Print the stored JSON of one collection",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, ss *session) error {
			name := args[0]
			if !slices.Contains(ss.store.Names(), name) {
				return fmt.Errorf("unknown collection %q", name)
			}
			raw, ok, err := ss.store.Raw(cmd.Context(), name)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "[]")
				return nil
			}
			var out bytes.Buffer
			if err := json.Indent(&out, raw, "", "  "); err != nil {
				logger.L().Warn("stored value is not valid json", zap.String("collection", name), zap.Error(err))
				out.Reset()
				out.Write(raw)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		}),
	}

	root.AddCommand(seedCmd, resetCmd, namesCmd, listCmd)
	return root
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
