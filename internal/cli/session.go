/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/suparena/dualstore"
	"github.com/suparena/dualstore/config"
	"github.com/suparena/dualstore/connectivity"
	"github.com/suparena/dualstore/datastore"
	"github.com/suparena/dualstore/datastore/ddb"
	"github.com/suparena/dualstore/datastore/pg"
	"github.com/suparena/dualstore/datastore/sqlite"
	"github.com/suparena/dualstore/registry"
)

// session is one command's view of the configured tiers.
type session struct {
	cfg     *config.Config
	store   *dualstore.Store
	logger  zerolog.Logger
	closers []io.Closer
}

func openSession(ctx context.Context, opts *RootOptions, logOut io.Writer) (*session, error) {
	cfg, err := opts.loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if opts.Offline {
		cfg.Offline = true
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, logCloser, err := newLogger(cfg, logOut)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to set up logging", err)
	}
	s := &session{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	remote, err := s.openRemote(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("remote", string(cfg.Remote)).
			Msg("remote store unavailable, continuing local-only")
		remote = nil
	}

	storeOpts := []dualstore.Option{
		dualstore.WithLogger(logger),
		dualstore.WithRemoteTimeout(cfg.RemoteTimeout),
	}
	if remote != nil {
		storeOpts = append(storeOpts, dualstore.WithRemote(remote))
	}
	s.store = dualstore.New(sqlite.New(cfg.LocalPath, nil, sqlite.WithLogger(logger)), storeOpts...)

	logger.Debug().Str("local_path", cfg.LocalPath).Str("remote", string(cfg.Remote)).
		Bool("offline", cfg.Offline).Msg("session opened")
	return s, nil
}

func (s *session) signal() connectivity.Signal {
	switch {
	case s.cfg.Offline:
		return connectivity.Never
	case s.cfg.ProbeAddr != "":
		return connectivity.NewProbe(s.cfg.ProbeAddr, 0)
	default:
		return connectivity.Always
	}
}

// openRemote builds the configured remote. A nil store with a nil error means
// no remote is configured.
func (s *session) openRemote(ctx context.Context) (datastore.RemoteStore, error) {
	if s.cfg.Remote == config.BackendNone {
		return nil, nil
	}
	if err := s.cfg.RemoteSettingsError(); err != nil {
		return nil, err
	}
	switch s.cfg.Remote {
	case config.BackendDynamoDB:
		d := s.cfg.DynamoDB
		return ddb.NewFromCredentials(ctx, ddb.Credentials{
			AccessKey: d.AccessKey,
			SecretKey: d.SecretKey,
			Region:    d.Region,
			Endpoint:  d.Endpoint,
		}, ddb.WithTablePrefix(d.TablePrefix), ddb.WithSignal(s.signal()))
	case config.BackendPostgres:
		if s.cfg.Offline {
			// gorm pings on open
			return nil, nil
		}
		store, err := pg.Open(s.cfg.Postgres.DSN, pg.WithSignal(s.signal()))
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, store)
		return store, nil
	default:
		return nil, nil
	}
}

// Close waits for background remote work and releases every handle.
func (s *session) Close() error {
	var errs []error
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return stderrors.Join(errs...)
}

func parseCollection(name string) (registry.Collection, error) {
	c := registry.Collection(strings.ToLower(name))
	if _, ok := registry.Default().Schema(c); ok {
		return c, nil
	}
	names := make([]string, 0, len(registry.All))
	for _, known := range registry.All {
		names = append(names, string(known))
	}
	sort.Strings(names)
	return "", NewExitError(ExitCommandError,
		fmt.Sprintf("unknown collection %q (known: %s)", name, strings.Join(names, ", ")))
}
