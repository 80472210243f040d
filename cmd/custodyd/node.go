package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/journal"
	"github.com/iov-one/custody/store/iavl"
	"github.com/tendermint/tendermint/libs/log"
)

// node is the engine opened on the state of the home directory.
type node struct {
	state   iavl.CommitStore
	journal *journal.Journal
	engine  *app.Engine
	logger  log.Logger
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "custodyd")
	return log.NewFilter(logger, allowed), nil
}

func openNode(c config, logger log.Logger) (*node, error) {
	dataDir := filepath.Join(c.Home, "data")
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create %s: %s", dataDir, err)
	}
	state, err := iavl.NewCommitStore(dataDir, "state")
	if err != nil {
		return nil, err
	}
	if err := state.LoadLatestVersion(); err != nil {
		state.Close()
		return nil, err
	}
	j, err := journal.Open(c.Journal)
	if err != nil {
		state.Close()
		return nil, err
	}

	version, _ := state.LatestVersion()
	logger.Debug("state loaded", "home", c.Home, "version", version.Version)

	engine := app.NewEngine(state.Adapter(),
		app.WithCommitter(state),
		app.WithLogger(logger),
		app.WithEventSink(j),
	)
	return &node{state: state, journal: j, engine: engine, logger: logger}, nil
}

func (n *node) Close() error {
	err := n.journal.Close()
	n.state.Close()
	return err
}
