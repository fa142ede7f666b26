package node

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swarmsend/go-swarmsend/cmd"
	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/config"
	"github.com/swarmsend/go-swarmsend/config/presets"
	"github.com/swarmsend/go-swarmsend/dispatch"
	"github.com/swarmsend/go-swarmsend/log"
	"github.com/swarmsend/go-swarmsend/namespace"
)

const cleanupTimeout = 30 * time.Second

// GetCommand returns the root command of the node executable.
func GetCommand() *cobra.Command {
	conf := config.DefaultConfig()
	var configPath *string
	c := &cobra.Command{
		Use:   "swarmsend",
		Short: "start node",
		RunE: func(c *cobra.Command, args []string) error {
			app, err := prepare(c, *configPath, &conf)
			if err != nil {
				return err
			}
			defer app.Unlock()

			// Don't print usage on error from this point forward
			c.SilenceUsage = true

			// os.Interrupt for all systems, syscall.SIGTERM is mainly for docker.
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			// This blocks until the context is finished or until an error is produced
			err = app.Start(ctx)
			cancel()
			cleanup(app)
			return err
		},
	}

	configPath = cmd.AddFlags(c.PersistentFlags(), &conf)

	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), cmd.Version)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:          "identity",
		Short:        "Print the session id of the account, creating the identity on first run",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, *configPath, &conf); err != nil {
				return err
			}
			app := New(WithConfig(&conf), WithLog(newLogger(&conf)))
			if err := app.Lock(); err != nil {
				return fmt.Errorf("getting exclusive file lock: %w", err)
			}
			defer app.Unlock()
			if err := app.Initialize(); err != nil {
				return err
			}
			if err := app.LoadOrCreateIdentity(); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), app.Signer().SessionID())
			return nil
		},
	})

	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect and refresh the local list of storage nodes",
	}
	poolCmd.AddCommand(&cobra.Command{
		Use:          "list",
		Short:        "Print the nodes of the pool",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			app, err := prepare(c, *configPath, &conf)
			if err != nil {
				return err
			}
			defer app.Unlock()
			defer cleanup(app)
			for _, n := range app.Pool().Nodes() {
				fmt.Fprintf(c.OutOrStdout(), "%s\t%s\n", n.Addr(), n.PubkeyEd25519)
			}
			return nil
		},
	})
	poolCmd.AddCommand(&cobra.Command{
		Use:          "refresh",
		Short:        "Refresh the pool from the network",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			app, err := prepare(c, *configPath, &conf)
			if err != nil {
				return err
			}
			defer app.Unlock()
			defer cleanup(app)
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := app.bootstrapPool(ctx); err != nil {
				return err
			}
			if err := app.Pool().Refresh(ctx); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "pool has %d nodes\n", app.Pool().Len())
			return nil
		},
	})
	c.AddCommand(poolCmd)

	var (
		to         string
		data       string
		ns         int
		ttl        time.Duration
		sync       bool
		nonDurable bool
	)
	sendCmd := &cobra.Command{
		Use:          "send",
		Short:        "Deliver a payload to the swarm of a destination and print its hash",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			dest, err := types.ParsePublicKey(to)
			if err != nil {
				return err
			}
			app, err := prepare(c, *configPath, &conf)
			if err != nil {
				return err
			}
			defer app.Unlock()
			defer cleanup(app)
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := app.Bootstrap(ctx); err != nil {
				return err
			}
			msg := &types.OutgoingRawMessage{
				Destination: dest,
				Namespace:   namespace.Namespace(ns),
				Data:        []byte(data),
				TTL:         ttl,
			}
			if nonDurable {
				var opts []dispatch.SendOpt
				if sync {
					opts = append(opts, dispatch.IsSyncMessage())
				}
				hash, ts, err := app.Dispatcher().SendNonDurably(ctx, msg, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "%s\t%d\n", hash, ts.UnixMilli())
				return nil
			}
			hash, err := app.SendAndWait(ctx, msg, sync)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), hash)
			return nil
		},
	}
	sendCmd.Flags().StringVar(&to, "to", "", "session id or group key of the destination")
	sendCmd.Flags().StringVar(&data, "data", "", "payload, already encrypted for the destination")
	sendCmd.Flags().IntVar(&ns, "namespace", int(namespace.Default), "namespace of the payload")
	sendCmd.Flags().DurationVar(&ttl, "ttl", 0, "time to live of the payload, the dispatch default if zero")
	sendCmd.Flags().BoolVar(&sync, "sync", false, "deliver to our own swarm")
	sendCmd.Flags().BoolVar(&nonDurable, "non-durable", false,
		"send once without the outbox and print the hash and the timestamp")
	c.AddCommand(sendCmd)

	return c
}

// SendAndWait enqueues msg and blocks until it is delivered or fails.
func (app *App) SendAndWait(ctx context.Context, msg *types.OutgoingRawMessage, sync bool) (string, error) {
	var opts []dispatch.SendOpt
	if sync {
		opts = append(opts, dispatch.IsSyncMessage())
	} else if dest, err := types.ParsePublicKey(string(msg.Destination)); err == nil && dest == app.signer.SessionID() {
		// the dispatcher drops such messages without calling back
		return "", dispatch.ErrSelfSend
	}
	type outcome struct {
		hash string
		err  error
	}
	done := make(chan outcome, 1)
	err := app.dispatcher.Send(ctx, msg, func(_ *types.OutgoingRawMessage, hash string, err error) {
		done <- outcome{hash: hash, err: err}
	}, opts...)
	if err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case rst := <-done:
		return rst.hash, rst.err
	}
}

// prepare loads the config, locks the data directory and creates the services.
// The caller must Unlock the returned app.
func prepare(c *cobra.Command, configPath string, conf *config.Config) (*App, error) {
	if err := configure(c, configPath, conf); err != nil {
		return nil, err
	}
	app := New(WithConfig(conf), WithLog(newLogger(conf)))
	if err := app.Lock(); err != nil {
		return nil, fmt.Errorf("getting exclusive file lock: %w", err)
	}
	err := app.Initialize()
	if err == nil {
		err = app.LoadOrCreateIdentity()
	}
	if err == nil {
		err = app.InitServices()
	}
	if err != nil {
		cleanup(app)
		app.Unlock()
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return app, nil
}

func cleanup(app *App) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		app.Cleanup(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		app.log.Error("app failed to clean up in time")
	}
}

// newLogger creates the root logger. It is at debug level so that the level of every
// component logger can be set independently.
func newLogger(conf *config.Config) *zap.Logger {
	return log.NewWithLevel("node", zap.NewAtomicLevelAt(zap.DebugLevel), log.NewEncoder(conf.LOGGING.Encoder))
}

func configure(c *cobra.Command, configPath string, conf *config.Config) error {
	if err := loadConfig(conf, conf.Preset, configPath); err != nil {
		return log.ErrMalformedConfig(err)
	}
	// apply CLI args to config
	if err := c.ParseFlags(os.Args[1:]); err != nil {
		return log.ErrBadFlags(err)
	}
	return nil
}

// loadConfig loads the preset, if provided, and overrides it with the values of the
// config file and of the environment.
func loadConfig(cfg *config.Config, preset, path string) error {
	if preset != "" {
		p, err := presets.Get(preset)
		if err != nil {
			return err
		}
		*cfg = p
	}
	return config.Load(cfg, path)
}
