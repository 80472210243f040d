package main

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/spf13/cobra"
)

// env is passed to every command implementation.
type env struct {
	ctx  context.Context
	cfg  config
	node *node
	out  io.Writer
}

// caller returns the address given with --as.
func (e *env) caller() (custody.Address, error) {
	if e.cfg.As == "" {
		return nil, errors.Wrap(errors.ErrUnauthorized, "--as is required")
	}
	addr, err := custody.ParseAddress(e.cfg.As)
	if err != nil {
		return nil, errors.Wrap(err, "--as")
	}
	return addr, nil
}

func (e *env) print(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.out.Write(append(raw, '\n'))
	return err
}

// NewRootCmd returns the custodyd command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	v := newViper()
	root := &cobra.Command{
		Use:           "custodyd",
		Short:         "Multi party custody of held value",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	pf := root.PersistentFlags()
	pf.String(flagHome, defaultHome(), "directory to store the state and the journal under")
	pf.String(flagLogLevel, "info", "log level, one of debug, info, error, none")
	pf.String(flagJournal, "", "event journal file, defaults to events.db in home")
	pf.String(flagAs, "", "address the call is made on behalf of")

	// run opens the node for the duration of a command.
	run := func(fn func(e *env, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd)
			if err != nil {
				return errors.Wrap(errors.ErrInput, err.Error())
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			n, err := openNode(cfg, logger)
			if err != nil {
				return err
			}
			defer n.Close()
			return fn(&env{ctx: cmd.Context(), cfg: cfg, node: n, out: cmd.OutOrStdout()}, args)
		}
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the initial registry, wallets and admins from a genesis file",
		Args:  cobra.NoArgs,
		RunE:  run(cmdInit),
	}
	initCmd.Flags().String(flagGenesis, "genesis.json", "genesis file to load")

	root.AddCommand(
		initCmd,
		txCmd("propose-transfer <recipient> <amount>", "Propose paying from the vault", 2, run(cmdProposeTransfer)),
		txCmd("approve-transfer <id>", "Approve a transfer proposal", 1, run(cmdApproveTransfer)),
		txCmd("execute-transfer <id>", "Pay out an approved transfer proposal", 1, run(cmdExecuteTransfer)),
		txCmd("propose-change <quorum> <signer>...", "Propose new signers and quorum", -2, run(cmdProposeChange)),
		txCmd("approve-change <id>", "Approve a change proposal", 1, run(cmdApproveChange)),
		txCmd("execute-change <id>", "Apply an approved change proposal", 1, run(cmdExecuteChange)),
		txCmd("deposit <amount>", "Move value from your wallet into the vault", 1, run(cmdDeposit)),
		txCmd("update-signers <signer>...", "Replace the signers, admin only", -1, run(cmdUpdateSigners)),
		txCmd("update-quorum <quorum>", "Replace the quorum, admin only", 1, run(cmdUpdateQuorum)),
		adminCmd(run),
		queryCmd(run),
		eventsCmd(run),
	)
	return root
}

// txCmd creates a command with an exact number of arguments, or at least
// -nargs arguments when nargs is negative.
func txCmd(use, short string, nargs int, runE func(*cobra.Command, []string) error) *cobra.Command {
	args := cobra.ExactArgs(nargs)
	if nargs < 0 {
		args = cobra.MinimumNArgs(-nargs)
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE:  runE,
	}
}

func cmdInit(e *env, args []string) error {
	raw, err := ioutil.ReadFile(e.cfg.Genesis)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var opts custody.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}
	if err := e.node.engine.InitChain(opts); err != nil {
		return err
	}
	version, err := e.node.state.LatestVersion()
	if err != nil {
		return err
	}
	return e.print(map[string]interface{}{"version": version.Version})
}

func parseUint(name, s string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "%s: %s", name, err)
	}
	return n, nil
}

func parseAddresses(args []string) ([]custody.Address, error) {
	res := make([]custody.Address, len(args))
	for i, a := range args {
		addr, err := custody.ParseAddress(a)
		if err != nil {
			return nil, errors.Wrapf(err, "address %d", i)
		}
		res[i] = addr
	}
	return res, nil
}
