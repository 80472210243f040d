package main

import (
	"github.com/iov-one/custody"
	"github.com/spf13/cobra"
)

type runner func(fn func(e *env, args []string) error) func(*cobra.Command, []string) error

func cmdProposeTransfer(e *env, args []string) error {
	caller, err := e.caller()
	if err != nil {
		return err
	}
	to, err := custody.ParseAddress(args[0])
	if err != nil {
		return err
	}
	amount, err := parseUint("amount", args[1], 64)
	if err != nil {
		return err
	}
	id, err := e.node.engine.ProposeTransfer(e.ctx, caller, to, amount)
	if err != nil {
		return err
	}
	return e.print(map[string]uint64{"id": id})
}

// withID returns a command implementation calling fn with the proposal id
// given as the only argument.
func withID(fn func(e *env, caller custody.Address, id uint64) error) func(e *env, args []string) error {
	return func(e *env, args []string) error {
		caller, err := e.caller()
		if err != nil {
			return err
		}
		id, err := parseUint("id", args[0], 64)
		if err != nil {
			return err
		}
		if err := fn(e, caller, id); err != nil {
			return err
		}
		return e.print(map[string]uint64{"id": id})
	}
}

var (
	cmdApproveTransfer = withID(func(e *env, caller custody.Address, id uint64) error {
		return e.node.engine.ApproveTransfer(e.ctx, caller, id)
	})
	cmdExecuteTransfer = withID(func(e *env, caller custody.Address, id uint64) error {
		return e.node.engine.ExecuteTransfer(e.ctx, caller, id)
	})
	cmdApproveChange = withID(func(e *env, caller custody.Address, id uint64) error {
		return e.node.engine.ApproveSignerQuorumChange(e.ctx, caller, id)
	})
	cmdExecuteChange = withID(func(e *env, caller custody.Address, id uint64) error {
		return e.node.engine.ExecuteSignerQuorumChange(e.ctx, caller, id)
	})
)

func cmdProposeChange(e *env, args []string) error {
	caller, err := e.caller()
	if err != nil {
		return err
	}
	quorum, err := parseUint("quorum", args[0], 32)
	if err != nil {
		return err
	}
	signers, err := parseAddresses(args[1:])
	if err != nil {
		return err
	}
	id, err := e.node.engine.ProposeSignerQuorumChange(e.ctx, caller, signers, uint32(quorum))
	if err != nil {
		return err
	}
	return e.print(map[string]uint64{"id": id})
}

func cmdDeposit(e *env, args []string) error {
	caller, err := e.caller()
	if err != nil {
		return err
	}
	amount, err := parseUint("amount", args[0], 64)
	if err != nil {
		return err
	}
	if err := e.node.engine.Deposit(e.ctx, caller, amount); err != nil {
		return err
	}
	held, err := e.node.engine.HeldBalance()
	if err != nil {
		return err
	}
	return e.print(map[string]uint64{"held": held})
}

func cmdUpdateSigners(e *env, args []string) error {
	caller, err := e.caller()
	if err != nil {
		return err
	}
	signers, err := parseAddresses(args)
	if err != nil {
		return err
	}
	if err := e.node.engine.UpdateSigners(e.ctx, caller, signers); err != nil {
		return err
	}
	return printRegistry(e)
}

func cmdUpdateQuorum(e *env, args []string) error {
	caller, err := e.caller()
	if err != nil {
		return err
	}
	quorum, err := parseUint("quorum", args[0], 32)
	if err != nil {
		return err
	}
	if err := e.node.engine.UpdateQuorum(e.ctx, caller, uint32(quorum)); err != nil {
		return err
	}
	return printRegistry(e)
}

func adminCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage who may use the admin rotation path",
	}
	change := func(grant bool) func(e *env, args []string) error {
		return func(e *env, args []string) error {
			caller, err := e.caller()
			if err != nil {
				return err
			}
			addr, err := custody.ParseAddress(args[0])
			if err != nil {
				return err
			}
			if grant {
				err = e.node.engine.GrantAdmin(e.ctx, caller, addr)
			} else {
				err = e.node.engine.RevokeAdmin(e.ctx, caller, addr)
			}
			if err != nil {
				return err
			}
			ok, err := e.node.engine.IsAdmin(addr)
			if err != nil {
				return err
			}
			return e.print(map[string]interface{}{"address": addr, "admin": ok})
		}
	}
	cmd.AddCommand(
		txCmd("grant <address>", "Give the admin capability, super admin only", 1, run(change(true))),
		txCmd("revoke <address>", "Take the admin capability away, super admin only", 1, run(change(false))),
	)
	return cmd
}
